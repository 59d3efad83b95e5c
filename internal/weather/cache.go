package weather

import (
	"sync"
	"time"
)

type cacheEntry struct {
	bundle    Bundle
	expiresAt time.Time
}

// Cache is a TTL map of query string to fetched bundle. A zero TTL disables
// caching entirely, which keeps each user action a fresh provider attempt.
type Cache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{items: make(map[string]cacheEntry), ttl: ttl}
}

// Get returns the cached bundle for a query, if present and fresh.
func (c *Cache) Get(key string) (Bundle, bool) {
	if c.ttl <= 0 {
		return Bundle{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return Bundle{}, false
	}
	return e.bundle, true
}

// Set stores a bundle for a query.
func (c *Cache) Set(key string, bundle Bundle) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{bundle: bundle, expiresAt: time.Now().Add(c.ttl)}
}
