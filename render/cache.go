package render

import (
	"sync"
	"sync/atomic"
)

// Cache memoizes Pipeline.Specialize per Key so descriptors are not
// rebuilt every frame.
//
// Cache is safe for concurrent use. Returned descriptors are shared and
// must not be modified.
type Cache struct {
	pipeline *Pipeline

	mu      sync.RWMutex
	entries map[Key]*Descriptor

	hits   uint64
	misses uint64
}

// NewCache returns an empty cache over p.
func NewCache(p *Pipeline) *Cache {
	return &Cache{
		pipeline: p,
		entries:  map[Key]*Descriptor{},
	}
}

// Get returns the descriptor for key, specializing it on first use.
func (c *Cache) Get(key Key) *Descriptor {
	c.mu.RLock()
	if d, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.hits, 1)
		return d
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// someone may have beaten us to it
	if d, ok := c.entries[key]; ok {
		atomic.AddUint64(&c.hits, 1)
		return d
	}

	d := c.pipeline.Specialize(key)
	c.entries[key] = d
	atomic.AddUint64(&c.misses, 1)
	return d
}

// Len is the number of cached specializations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}
