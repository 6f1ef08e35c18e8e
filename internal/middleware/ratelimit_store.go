package middleware

import (
	"context"
	"time"

	"github.com/charlesng35/heroes/internal/cache"
)

// RateStore coordinates rate limiting counters for a specific key.
type RateStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int, ttl time.Duration, err error)
}

const rateKeyPrefix = "ratelimit:"

// counterRateStore adapts any cache backend with fixed-window counters to a RateStore.
type counterRateStore struct {
	counter cache.Counter
}

// NewRateStore wraps a cache counter (memory, Redis or database) in a RateStore.
func NewRateStore(counter cache.Counter) RateStore {
	if counter == nil {
		return nil
	}
	return &counterRateStore{counter: counter}
}

func (s *counterRateStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	if window <= 0 {
		window = time.Minute
	}
	count, ttl, err := s.counter.IncrementWithTTL(ctx, rateKeyPrefix+key, window)
	return int(count), ttl, err
}
