package cache

import (
	"sync"
	"sync/atomic"
)

// ValueCache memoizes value translations for one run. It is owned by the
// caller that starts the run and handed to each lookup explicitly; it is safe
// for concurrent use by the worker pool. A nil cache is valid and stores nothing.
type ValueCache[V any] struct {
	mu     sync.RWMutex
	memory map[string]V
	hits   atomic.Int64
	misses atomic.Int64
}

// NewValueCache creates an empty run-scoped cache.
func NewValueCache[V any]() *ValueCache[V] {
	return &ValueCache[V]{memory: make(map[string]V)}
}

// Get returns the cached value for key.
func (c *ValueCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	v, ok := c.memory[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)
	return zero, false
}

// Set stores v under key.
func (c *ValueCache[V]) Set(key string, v V) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.memory[key] = v
	c.mu.Unlock()
}

// Len returns the number of cached values.
func (c *ValueCache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

// Stats returns hit and miss counts since creation.
func (c *ValueCache[V]) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
