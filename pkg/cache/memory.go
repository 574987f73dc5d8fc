package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     any
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-process LRU cache with TTL support.
type MemoryCache struct {
	mu       sync.Mutex
	items    map[string]*list.Element
	order    *list.List
	cfg      MemoryConfig
	stopOnce sync.Once
	stop     chan struct{}
}

// NewMemoryCache creates an in-memory cache and starts its janitor.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := MemoryConfig{
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &MemoryCache{
		items: make(map[string]*list.Element),
		order: list.New(),
		cfg:   cfg,
		stop:  make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *MemoryCache) janitor() {
	ticker := time.NewTicker(c.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, el := range c.items {
		if el.Value.(*memoryEntry).expired(now) {
			c.removeLocked(key, el)
		}
	}
}

func (c *MemoryCache) removeLocked(key string, el *list.Element) {
	c.order.Remove(el)
	delete(c.items, key)
}

// Set stores a value under key with the given TTL. Zero TTL uses the
// configured default; a default of zero means no expiry.
func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.cfg.DefaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return nil
	}

	if c.cfg.MaxSize > 0 && c.order.Len() >= c.cfg.MaxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.removeLocked(oldest.Value.(*memoryEntry).key, oldest)
		}
	}

	el := c.order.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = el
	return nil
}

// Get returns the value for key or ErrCacheMiss.
func (c *MemoryCache) Get(ctx context.Context, key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	entry := el.Value.(*memoryEntry)
	if entry.expired(time.Now()) {
		c.removeLocked(key, el)
		return nil, ErrCacheMiss
	}
	c.order.MoveToFront(el)
	return entry.value, nil
}

// Delete removes a key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeLocked(key, el)
	}
	return nil
}

// Exists reports whether key is present and not expired.
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return false, nil
	}
	if el.Value.(*memoryEntry).expired(time.Now()) {
		c.removeLocked(key, el)
		return false, nil
	}
	return true, nil
}

// MSet stores multiple entries with a shared TTL.
func (c *MemoryCache) MSet(ctx context.Context, entries map[string]any, ttl time.Duration) error {
	for key, value := range entries {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// MGet returns values for keys; missing keys are absent from the result.
func (c *MemoryCache) MGet(ctx context.Context, keys ...string) (map[string]any, error) {
	result := make(map[string]any, len(keys))
	for _, key := range keys {
		value, err := c.Get(ctx, key)
		if err != nil {
			continue
		}
		result[key] = value
	}
	return result, nil
}

// Close stops the janitor goroutine.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}
