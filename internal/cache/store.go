package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Supported cache drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverDatabase = "database"
)

const (
	defaultMaxEntries      = 100
	defaultCleanupInterval = time.Minute
)

// ErrStoreClosed is returned when a store is used before initialisation or after Close.
var ErrStoreClosed = errors.New("cache: store not initialised")

// Store represents a shared cache interface used across the application.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// Counter is implemented by stores able to maintain fixed-window counters. It backs the
// request rate limiter.
type Counter interface {
	IncrementWithTTL(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Pinger is implemented by stores whose backend can be probed for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config selects and tunes a cache backend.
type Config struct {
	Driver          string
	MaxEntries      int
	CleanupInterval time.Duration
	Redis           RedisConfig
}

// Backend is the full behaviour shared by every concrete store.
type Backend interface {
	Store
	Counter
	Pinger
	Close() error
}

// Open constructs the store selected by cfg.Driver. The database handle is only required
// for the database driver.
func Open(ctx context.Context, cfg Config, db *gorm.DB) (Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		return NewMemoryStore(cfg.MaxEntries, cfg.CleanupInterval), nil
	case DriverRedis:
		store, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverDatabase:
		if db == nil {
			return nil, errors.New("cache: database driver requires a database handle")
		}
		return NewDatabaseStore(db), nil
	default:
		return nil, fmt.Errorf("cache: unsupported driver %q", cfg.Driver)
	}
}
