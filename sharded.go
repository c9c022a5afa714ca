package cachekit

import (
	"fmt"
	"hash/maphash"
	"sync"
)

// Sharded splits keys across independent Cache shards so that concurrent
// operations on different shards never contend on the same lock. Total
// capacity is divided exactly among the shards, so Len never exceeds Cap,
// but eviction runs per shard: capacity pressure in one shard evicts that
// shard's least recently used entry, which is not necessarily the globally
// least recently used one.
//
// Keys are routed to shards with a per-instance random hash seed, so the
// shard assignment of a given key differs between instances and between
// process runs.
type Sharded[K comparable, V any] struct {
	seed     maphash.Seed
	shards   []*Cache[K, V]
	capacity int

	mu       sync.Mutex
	handlers handlerList[K, V]
}

// NewSharded creates a cache with the given total capacity split across
// shards. A shard count larger than the capacity is clamped down so every
// shard holds at least one entry. It returns ErrInvalidCapacity or
// ErrInvalidShardCount when an argument is not positive.
func NewSharded[K comparable, V any](capacity, shards int, opts ...Option[K, V]) (*Sharded[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if shards <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, shards)
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if shards > capacity {
		shards = capacity
	}

	s := &Sharded[K, V]{
		seed:     maphash.MakeSeed(),
		shards:   make([]*Cache[K, V], shards),
		capacity: capacity,
	}
	for _, fn := range cfg.callbacks {
		s.handlers.attach(fn)
	}

	// The first capacity%shards shards take one extra slot so the shard
	// capacities sum exactly to the total.
	base := capacity / shards
	extra := capacity % shards
	for i := range s.shards {
		shardCap := base
		if i < extra {
			shardCap++
		}
		shardOpts := []Option[K, V]{WithEvictionCallback(s.fanout)}
		if cfg.preallocate {
			shardOpts = append(shardOpts, WithPreallocation[K, V]())
		}
		shard, err := New(shardCap, shardOpts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = shard
	}
	return s, nil
}

// MustNewSharded creates a sharded cache with the given total capacity.
// Panics if construction fails.
func MustNewSharded[K comparable, V any](capacity, shards int, opts ...Option[K, V]) *Sharded[K, V] {
	s, err := NewSharded[K, V](capacity, shards, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create sharded cache: %v", err))
	}
	return s
}

// shard returns the shard owning key.
func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	h := maphash.Comparable(s.seed, key)
	return s.shards[h%uint64(len(s.shards))]
}

// fanout forwards one shard's eviction to the callbacks registered on the
// sharded cache. Shards invoke it after releasing their own lock.
func (s *Sharded[K, V]) fanout(key K, value V, reason EvictionReason) {
	s.mu.Lock()
	fns := s.handlers.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key, value, reason)
	}
}

// Get retrieves the value stored under key and marks the entry as the most
// recently used within its shard.
func (s *Sharded[K, V]) Get(key K) (V, bool) {
	return s.shard(key).Get(key)
}

// Peek retrieves the value stored under key without marking the entry as
// used.
func (s *Sharded[K, V]) Peek(key K) (V, bool) {
	return s.shard(key).Peek(key)
}

// Contains reports whether key is present without marking the entry as used.
func (s *Sharded[K, V]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}

// Put adds or updates a value in the shard owning key. Returns the previous
// value if the key existed, and a boolean indicating if it existed.
func (s *Sharded[K, V]) Put(key K, value V) (V, bool) {
	return s.shard(key).Put(key, value)
}

// Remove deletes the entry stored under key. Returns the removed value and
// true if it existed, the zero value and false otherwise.
func (s *Sharded[K, V]) Remove(key K) (V, bool) {
	return s.shard(key).Remove(key)
}

// Keys returns the cached keys grouped by shard, least to most recently used
// within each shard.
func (s *Sharded[K, V]) Keys() []K {
	keys := make([]K, 0, s.Len())
	for _, shard := range s.shards {
		keys = append(keys, shard.Keys()...)
	}
	return keys
}

// Len returns the number of entries across all shards. Shards are counted
// one at a time, so the result is approximate while writers are active.
func (s *Sharded[K, V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// Cap returns the total capacity the cache was created with.
func (s *Sharded[K, V]) Cap() int {
	return s.capacity
}

// Shards returns the number of shards in use, after any clamping applied at
// construction.
func (s *Sharded[K, V]) Shards() int {
	return len(s.shards)
}

// Stats returns the counters aggregated across all shards. Shards are read
// one at a time, so the aggregate is approximate while writers are active.
func (s *Sharded[K, V]) Stats() Stats {
	var total Stats
	for _, shard := range s.shards {
		total.add(shard.Stats())
	}
	return total
}

// Clear removes all entries from every shard.
func (s *Sharded[K, V]) Clear() {
	for _, shard := range s.shards {
		shard.Clear()
	}
}

// OnEvict registers fn to observe entries leaving any shard and returns a
// function that detaches it. Detaching twice is a no-op. Panics on a nil
// callback.
func (s *Sharded[K, V]) OnEvict(fn EvictionCallback[K, V]) func() {
	if fn == nil {
		panic("eviction callback cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.handlers.attach(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.handlers.detach(id)
	}
}
