package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU is a bounded cache with least-recently-used eviction and optional
// per-entry expiry. A zero ttl disables expiry; entries then live until
// capacity pushes them out.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[K]*list.Element
	order    *list.List
	nowFn    func() time.Time

	hits   int64
	misses int64
}

type lruEntry[K comparable, V any] struct {
	key     K
	value   V
	staleAt time.Time
}

func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[K]*list.Element, capacity),
		order:    list.New(),
		nowFn:    time.Now,
	}
}

// Get returns the cached value and whether it was present and fresh.
// Expired entries are dropped on access.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	e := elem.Value.(*lruEntry[K, V])
	if c.expired(e) {
		c.remove(elem)
		c.misses++
		var zero V
		return zero, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return e.value, true
}

// Put stores value under key, refreshing recency and expiry. The oldest
// entry is evicted when the cache is full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		e := elem.Value.(*lruEntry[K, V])
		e.value = value
		e.staleAt = c.stalePoint()
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
	c.entries[key] = c.order.PushFront(&lruEntry[K, V]{
		key:     key,
		value:   value,
		staleAt: c.stalePoint(),
	})
}

// Remove drops key if present.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.remove(elem)
	}
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns cumulative hit and miss counts.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *LRU[K, V]) stalePoint() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.nowFn().Add(c.ttl)
}

func (c *LRU[K, V]) expired(e *lruEntry[K, V]) bool {
	return !e.staleAt.IsZero() && c.nowFn().After(e.staleAt)
}

func (c *LRU[K, V]) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*lruEntry[K, V]).key)
}
