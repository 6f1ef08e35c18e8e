package app

import (
	"strings"

	"github.com/charlesng35/heroes/internal/cache"
)

// RedisClientConfig converts the application cache configuration into the cache package representation.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Address:  strings.TrimSpace(c.Redis.Address),
		Username: strings.TrimSpace(c.Redis.Username),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		TLS:      c.Redis.TLS,
		Timeout:  c.Redis.Timeout,
	}
}

// StoreConfig converts the cache section into the options used to open a cache backend.
func (c CacheConfig) StoreConfig() cache.Config {
	return cache.Config{
		Driver:          strings.ToLower(strings.TrimSpace(c.Driver)),
		MaxEntries:      c.MaxEntries,
		CleanupInterval: c.CleanupInterval,
		Redis:           c.RedisClientConfig(),
	}
}
