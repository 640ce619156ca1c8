// Package cache provides a small generic LRU cache used by the validation
// engine for compiled patterns and per-field validator lookups.
package cache

import (
	"container/list"
	"sync"
)

// Cache is a generic LRU cache. It locks internally so process-wide instances
// stay safe if the host ever drives forms from more than one goroutine.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]*entry[K, V]
	order    *list.List
	capacity int
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	element *list.Element
}

// New creates a Cache holding at most capacity entries. When the cache is
// full, the least recently used entry is evicted.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 64
	}
	return &Cache[K, V]{
		items:    make(map[K]*entry[K, V], capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get retrieves a value, marking it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(e.element)
	return e.value, true
}

// Set adds or updates a value, evicting the oldest entry when at capacity.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		c.order.MoveToFront(e.element)
		return
	}
	if len(c.items) >= c.capacity {
		c.evictOldest()
	}
	element := c.order.PushFront(key)
	c.items[key] = &entry[K, V]{key: key, value: value, element: element}
}

// GetOrSet returns the cached value for key, computing and storing it with fn
// on a miss.
func (c *Cache[K, V]) GetOrSet(key K, fn func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.order.MoveToFront(e.element)
		return e.value
	}
	value := fn()
	if len(c.items) >= c.capacity {
		c.evictOldest()
	}
	element := c.order.PushFront(key)
	c.items[key] = &entry[K, V]{key: key, value: value, element: element}
	return value
}

// Delete removes an entry. Missing keys are ignored.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.Remove(e.element)
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*entry[K, V], c.capacity)
	c.order.Init()
}

// evictOldest removes the least recently used entry. Callers hold mu.
func (c *Cache[K, V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	key := oldest.Value.(K)
	delete(c.items, key)
	c.order.Remove(oldest)
}
