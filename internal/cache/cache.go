// Package cache provides a small in-memory TTL cache for analysis
// results. Entries expire after the configured TTL and the oldest entry
// is evicted once the cache is full.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"hiresight/internal/config"
	"hiresight/internal/errors"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a bounded TTL cache. A nil *Cache is valid and behaves as a
// disabled cache, mirroring how disabled circuit breakers are handled.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	maxSize int
	hits    uint64
	misses  uint64
	logger  *errors.Logger
}

// New creates a cache from configuration. Returns nil when caching is
// disabled.
func New(cfg config.CacheConfig, logger *errors.Logger) *Cache {
	if !cfg.Enabled {
		if logger != nil {
			logger.Debug("Cache disabled")
		}
		return nil
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 100
	}

	if logger != nil {
		logger.Info("Cache initialized", "max_size", maxSize, "ttl", ttl.String())
	}

	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Since(e.storedAt) > c.ttl {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}

	c.hits++
	return e.value, true
}

// Set stores a value, evicting expired entries and then the oldest entry
// if the cache is full.
func (c *Cache) Set(key string, value any) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	c.entries[key] = entry{value: value, storedAt: time.Now()}
}

// evictLocked drops expired entries, falling back to the oldest entry
// when nothing has expired. Caller holds the lock.
func (c *Cache) evictLocked() {
	now := time.Now()
	removed := false
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
			removed = true
		}
	}
	if removed {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.storedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats reports cache state for the stats endpoint.
func (c *Cache) Stats() map[string]any {
	if c == nil {
		return map[string]any{"enabled": false}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]any{
		"enabled": true,
		"size":    len(c.entries),
		"maxsize": c.maxSize,
		"ttl":     c.ttl.String(),
		"hits":    c.hits,
		"misses":  c.misses,
	}
}

// Key derives a stable cache key from arbitrary JSON-encodable parts.
func Key(parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(err.Error())
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
