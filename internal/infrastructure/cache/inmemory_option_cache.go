package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryOptionCache is a process-local OptionCache with TTL eviction.
// Suitable for single-instance deployments and tests; entries are not
// shared across processes.
type InMemoryOptionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryOptionCache creates a new InMemoryOptionCache
func NewInMemoryOptionCache() *InMemoryOptionCache {
	return &InMemoryOptionCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get retrieves a cached listing, expiring stale entries lazily
func (c *InMemoryOptionCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.data, nil
}

// Set stores a listing with the given TTL
func (c *InMemoryOptionCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a cached listing
func (c *InMemoryOptionCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory cache
func (c *InMemoryOptionCache) Close() error {
	return nil
}

// Ensure InMemoryOptionCache implements OptionCache
var _ OptionCache = (*InMemoryOptionCache)(nil)
