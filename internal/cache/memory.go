package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements in-memory expiring caching, safe for concurrent use
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache. A zero TTL keeps entries forever.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	if defaultTTL == 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) (bool, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(bool), true
	}
	return false, false
}

// Set stores a value with the default TTL
func (c *MemoryCache) Set(key string, value bool) {
	c.cache.SetDefault(key, value)
}

// Len returns the number of stored entries, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// New returns a MemoryCache when enabled, otherwise a Noop cache
func New(enabled bool, ttl, cleanupInterval time.Duration) Cache {
	if !enabled {
		return Noop{}
	}
	return NewMemoryCache(ttl, cleanupInterval)
}
