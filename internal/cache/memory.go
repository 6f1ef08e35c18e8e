package cache

import (
	"context"
	"math"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory. Writes beyond the configured capacity evict
// the entry closest to expiry.
type MemoryStore struct {
	mu         sync.Mutex
	items      *gocache.Cache
	maxEntries int
}

// NewMemoryStore constructs an in-memory store holding at most maxEntries keys.
func NewMemoryStore(maxEntries int, cleanupInterval time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}
	return &MemoryStore{
		items:      gocache.New(gocache.NoExpiration, cleanupInterval),
		maxEntries: maxEntries,
	}
}

// Set stores a copy of value. A non-positive ttl keeps the entry until evicted.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil || s.items == nil {
		return ErrStoreClosed
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items.Get(key); !exists {
		s.makeRoom()
	}
	s.items.Set(key, cloneBytes(value), ttl)
	return nil
}

// Get returns a copy of the value stored under key while it is unexpired.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.items == nil {
		return nil, false, ErrStoreClosed
	}

	raw, ok := s.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	value, ok := raw.([]byte)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

// Delete removes keys from the store.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	if s == nil || s.items == nil {
		return ErrStoreClosed
	}
	for _, key := range keys {
		s.items.Delete(key)
	}
	return nil
}

// IncrementWithTTL increments a counter that resets once window has elapsed.
func (s *MemoryStore) IncrementWithTTL(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if s == nil || s.items == nil {
		return 0, 0, ErrStoreClosed
	}
	if window <= 0 {
		window = time.Minute
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, expiresAt, ok := s.items.GetWithExpiration(key); ok {
		count, err := s.items.IncrementInt64(key, 1)
		if err == nil {
			return count, time.Until(expiresAt), nil
		}
	} else {
		s.makeRoom()
	}

	s.items.Set(key, int64(1), window)
	return 1, window, nil
}

// Len reports the number of unexpired entries.
func (s *MemoryStore) Len() int {
	if s == nil || s.items == nil {
		return 0
	}
	return len(s.items.Items())
}

// Ping always succeeds for the in-process store.
func (s *MemoryStore) Ping(context.Context) error {
	if s == nil || s.items == nil {
		return ErrStoreClosed
	}
	return nil
}

// Close drops every entry.
func (s *MemoryStore) Close() error {
	if s == nil || s.items == nil {
		return nil
	}
	s.items.Flush()
	return nil
}

// makeRoom evicts entries until one more key fits. Callers hold s.mu.
func (s *MemoryStore) makeRoom() {
	s.items.DeleteExpired()
	for s.items.ItemCount() >= s.maxEntries {
		victim, found := "", false
		soonest := int64(math.MaxInt64)
		for key, item := range s.items.Items() {
			expiration := item.Expiration
			if expiration == 0 {
				expiration = math.MaxInt64
			}
			if !found || expiration < soonest {
				victim, soonest, found = key, expiration, true
			}
		}
		if !found {
			return
		}
		s.items.Delete(victim)
	}
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
