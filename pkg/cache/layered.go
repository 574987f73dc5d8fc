package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache reads through a fast in-process layer before falling
// back to Redis, and writes through both.
type LayeredCache struct {
	l1 *MemoryCache
	l2 *RedisCache
}

// NewLayeredCache builds a two-level cache over an existing Redis cache.
func NewLayeredCache(l2 *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := LayeredConfig{MemoryMaxSize: 5000}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LayeredCache{
		l1: NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		l2: l2,
	}
}

// Set writes to both layers.
func (c *LayeredCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := c.l2.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return c.l1.Set(ctx, key, value, ttl)
}

// Get checks the memory layer first, then Redis. A Redis hit is
// promoted to the memory layer without a TTL reset.
func (c *LayeredCache) Get(ctx context.Context, key string) (any, error) {
	if value, err := c.l1.Get(ctx, key); err == nil {
		return value, nil
	}
	value, err := c.l2.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = c.l1.Set(ctx, key, value, time.Minute)
	return value, nil
}

// Delete removes key from both layers.
func (c *LayeredCache) Delete(ctx context.Context, key string) error {
	if err := c.l1.Delete(ctx, key); err != nil {
		return err
	}
	return c.l2.Delete(ctx, key)
}

// Exists checks the memory layer first, then Redis.
func (c *LayeredCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, err := c.l1.Exists(ctx, key); err == nil && ok {
		return true, nil
	}
	return c.l2.Exists(ctx, key)
}

// MSet writes all entries through both layers.
func (c *LayeredCache) MSet(ctx context.Context, entries map[string]any, ttl time.Duration) error {
	if err := c.l2.MSet(ctx, entries, ttl); err != nil {
		return err
	}
	return c.l1.MSet(ctx, entries, ttl)
}

// MGet resolves from the memory layer and fills the remainder from
// Redis, promoting hits.
func (c *LayeredCache) MGet(ctx context.Context, keys ...string) (map[string]any, error) {
	result, err := c.l1.MGet(ctx, keys...)
	if err != nil {
		result = map[string]any{}
	}
	var missing []string
	for _, key := range keys {
		if _, ok := result[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return result, nil
	}
	fromRedis, err := c.l2.MGet(ctx, missing...)
	if err != nil {
		return nil, err
	}
	for key, value := range fromRedis {
		result[key] = value
		_ = c.l1.Set(ctx, key, value, time.Minute)
	}
	return result, nil
}

// Close closes both layers.
func (c *LayeredCache) Close() error {
	return errors.Join(c.l1.Close(), c.l2.Close())
}
