package cachekit

import (
	"container/list"
	"fmt"
	"sync"
)

// entry is the payload stored in each recency-list element. Carrying the key
// next to the value lets eviction delete the map entry without a reverse
// lookup.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a thread-safe, fixed-capacity cache with least-recently-used
// eviction. A map indexes entries by key while a doubly-linked list keeps
// them ordered from most (front) to least (back) recently used; one mutex
// guards both structures and they are only ever mutated together.
//
// The zero value is not usable. Construct with New or MustNew.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	mapHint  int
	items    map[K]*list.Element
	order    *list.List
	stats    Stats
	handlers handlerList[K, V]
}

// New creates a cache holding at most capacity entries. It returns
// ErrInvalidCapacity when capacity is not positive.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		capacity: capacity,
		order:    list.New(),
	}
	if cfg.preallocate {
		c.mapHint = capacity
	}
	c.items = make(map[K]*list.Element, c.mapHint)
	for _, fn := range cfg.callbacks {
		c.handlers.attach(fn)
	}
	return c, nil
}

// MustNew creates a cache holding at most capacity entries.
// Panics if construction fails, following the fail-fast pattern for caches
// wired up at program start.
func MustNew[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	c, err := New(capacity, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create cache: %v", err))
	}
	return c
}

// Get retrieves the value stored under key and marks the entry as the most
// recently used. Returns the value and true if found, the zero value and
// false otherwise; a miss does not change the cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		c.stats.Hits++
		return elem.Value.(*entry[K, V]).value, true
	}

	c.stats.Misses++
	var zero V
	return zero, false
}

// Peek retrieves the value stored under key without marking the entry as
// used. It does not count toward hit or miss statistics.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*entry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Contains reports whether key is present without marking the entry as used.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	return ok
}

// Put adds or updates a value in the cache and marks the entry as the most
// recently used. When a new entry would exceed capacity, the least recently
// used entry is evicted first. Returns the previous value if the key
// existed, and a boolean indicating if it existed.
func (c *Cache[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	var pending pendingEvictions[K, V]
	defer pending.dispatch()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		ent := elem.Value.(*entry[K, V])
		oldValue := ent.value
		ent.value = value
		return oldValue, true
	}

	if c.order.Len() >= c.capacity {
		c.evictOldest(&pending)
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})

	var zero V
	return zero, false
}

// Remove deletes the entry stored under key. Removal is not a use: the
// recency order of the remaining entries is untouched, and removing an
// absent key is a no-op. Returns the removed value and true if it existed,
// the zero value and false otherwise.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	var pending pendingEvictions[K, V]
	defer pending.dispatch()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry[K, V])
		c.removeElement(elem, ReasonRemoved, &pending)
		return ent.value, true
	}

	var zero V
	return zero, false
}

// RemoveOldest removes the least recently used entry and returns it. It
// reports false when the cache is empty.
func (c *Cache[K, V]) RemoveOldest() (K, V, bool) {
	c.mu.Lock()
	var pending pendingEvictions[K, V]
	defer pending.dispatch()
	defer c.mu.Unlock()

	elem := c.order.Back()
	if elem == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	ent := elem.Value.(*entry[K, V])
	c.removeElement(elem, ReasonRemoved, &pending)
	return ent.key, ent.value, true
}

// Keys returns the cached keys ordered from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		keys = append(keys, elem.Value.(*entry[K, V]).key)
	}
	return keys
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Cap returns the capacity the cache was created with. Capacity is fixed for
// the life of the cache.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Clear removes all entries from the cache. Registered callbacks observe
// each entry with ReasonCleared, least recently used first.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	var pending pendingEvictions[K, V]
	defer pending.dispatch()
	defer c.mu.Unlock()

	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		ent := elem.Value.(*entry[K, V])
		c.stats.Removals++
		pending.stage(&c.handlers, ent.key, ent.value, ReasonCleared)
	}
	c.items = make(map[K]*list.Element, c.mapHint)
	c.order.Init()
}

// OnEvict registers fn to observe entries leaving the cache and returns a
// function that detaches it. Detaching twice is a no-op. Panics on a nil
// callback.
func (c *Cache[K, V]) OnEvict(fn EvictionCallback[K, V]) func() {
	if fn == nil {
		panic("eviction callback cannot be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.handlers.attach(fn)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.handlers.detach(id)
	}
}

// Must be called with lock held.
func (c *Cache[K, V]) evictOldest(pending *pendingEvictions[K, V]) {
	if elem := c.order.Back(); elem != nil {
		c.removeElement(elem, ReasonCapacity, pending)
	}
}

// Must be called with lock held.
func (c *Cache[K, V]) removeElement(elem *list.Element, reason EvictionReason, pending *pendingEvictions[K, V]) {
	c.order.Remove(elem)
	ent := elem.Value.(*entry[K, V])
	delete(c.items, ent.key)

	if reason == ReasonCapacity {
		c.stats.Evictions++
	} else {
		c.stats.Removals++
	}
	pending.stage(&c.handlers, ent.key, ent.value, reason)
}
