package cachekit

import "fmt"

// Tiered chains caches so that lookups fall through from the fastest level
// to the slowest. A hit at a lower level is promoted into every level above
// it, and writes go through all levels. Tiered itself satisfies Level, so
// tiered caches nest inside other tiered caches.
//
// Tiered adds no locking of its own: each level synchronizes itself, and an
// operation touches the levels one at a time. Readers racing a write may
// briefly observe a value in one level and not another; the fall-through on
// Get is what makes that window harmless.
type Tiered[K comparable, V any] struct {
	levels []Level[K, V]
}

// NewTiered creates a tiered cache consulting the given levels in order,
// fastest first. It returns ErrNoLevels when called without levels and
// ErrNilLevel when any level is nil.
func NewTiered[K comparable, V any](levels ...Level[K, V]) (*Tiered[K, V], error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	for i, level := range levels {
		if level == nil {
			return nil, fmt.Errorf("%w: level %d", ErrNilLevel, i)
		}
	}

	t := &Tiered[K, V]{levels: make([]Level[K, V], len(levels))}
	copy(t.levels, levels)
	return t, nil
}

// MustNewTiered creates a tiered cache consulting the given levels in order.
// Panics if construction fails.
func MustNewTiered[K comparable, V any](levels ...Level[K, V]) *Tiered[K, V] {
	t, err := NewTiered(levels...)
	if err != nil {
		panic(fmt.Sprintf("failed to create tiered cache: %v", err))
	}
	return t
}

// Get retrieves the value stored under key, consulting each level in order.
// A hit at level i writes the value back into levels 0 through i-1, so the
// next lookup is served by a faster level.
func (t *Tiered[K, V]) Get(key K) (V, bool) {
	for i, level := range t.levels {
		if v, ok := level.Get(key); ok {
			for j := range i {
				t.levels[j].Put(key, v)
			}
			return v, true
		}
	}

	var zero V
	return zero, false
}

// Put stores value in every level. Returns the previous value reported by
// the first level, which is the one consulted first on reads.
func (t *Tiered[K, V]) Put(key K, value V) (V, bool) {
	oldValue, existed := t.levels[0].Put(key, value)
	for _, level := range t.levels[1:] {
		level.Put(key, value)
	}
	return oldValue, existed
}

// Remove deletes the entry stored under key from every level. Returns the
// value held by the fastest level that had the key, and whether any level
// had it.
func (t *Tiered[K, V]) Remove(key K) (V, bool) {
	var removed V
	found := false
	for _, level := range t.levels {
		if v, ok := level.Remove(key); ok && !found {
			removed = v
			found = true
		}
	}
	return removed, found
}

// Clear removes all entries from every level.
func (t *Tiered[K, V]) Clear() {
	for _, level := range t.levels {
		level.Clear()
	}
}

// Levels returns the number of levels in the chain.
func (t *Tiered[K, V]) Levels() int {
	return len(t.levels)
}
