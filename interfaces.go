package cachekit

// Capability interfaces. Each one names a single thing a cache can do, so
// callers depend on exactly the surface they use and wrappers state exactly
// what they require from the types they wrap.

// Getter reads values by key.
type Getter[K comparable, V any] interface {
	// Get returns the value stored under key. On implementations that track
	// recency, a hit makes the entry the most recently used.
	Get(key K) (V, bool)
}

// Putter writes values by key.
type Putter[K comparable, V any] interface {
	// Put stores value under key, replacing any previous value, and returns
	// the previous value and whether one existed.
	Put(key K, value V) (V, bool)
}

// Remover deletes values by key.
type Remover[K comparable, V any] interface {
	// Remove deletes the entry stored under key and returns the removed
	// value and whether the key was present.
	Remove(key K) (V, bool)
}

// Peeker reads values by key without refreshing recency.
type Peeker[K comparable, V any] interface {
	// Peek returns the value stored under key without making the entry more
	// recently used.
	Peek(key K) (V, bool)
}

// ReadWriter is what a read-through loader requires from its backing cache.
type ReadWriter[K comparable, V any] interface {
	Getter[K, V]
	Putter[K, V]
}

// Level is what Tiered requires from each of its levels. It deliberately
// omits Len: levels may hold overlapping entries, so a combined size is not
// meaningful, and Tiered itself satisfies Level to let tiers nest.
type Level[K comparable, V any] interface {
	Getter[K, V]
	Putter[K, V]
	Remover[K, V]
	Clear()
}

// Interface is the full read-write surface shared by Cache, Sharded, and
// NoOp.
type Interface[K comparable, V any] interface {
	Getter[K, V]
	Putter[K, V]
	Remover[K, V]
	Len() int
	Clear()
}

// Bounded reports a size together with a fixed capacity.
type Bounded interface {
	Len() int
	Cap() int
}

// NoOp stores nothing: reads always miss and writes are discarded. It is
// useful as a disabled tier or a stand-in in tests.
type NoOp[K comparable, V any] struct{}

func (NoOp[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoOp[K, V]) Peek(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoOp[K, V]) Put(key K, value V) (V, bool) {
	var zero V
	return zero, false
}

func (NoOp[K, V]) Remove(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoOp[K, V]) Contains(key K) bool { return false }

func (NoOp[K, V]) Len() int { return 0 }

func (NoOp[K, V]) Clear() {}

var (
	_ Interface[string, int] = (*Cache[string, int])(nil)
	_ Peeker[string, int]    = (*Cache[string, int])(nil)
	_ Level[string, int]     = (*Cache[string, int])(nil)
	_ Bounded                = (*Cache[string, int])(nil)
	_ Interface[string, int] = (*Sharded[string, int])(nil)
	_ Peeker[string, int]    = (*Sharded[string, int])(nil)
	_ Level[string, int]     = (*Sharded[string, int])(nil)
	_ Bounded                = (*Sharded[string, int])(nil)
	_ Level[string, int]     = (*Tiered[string, int])(nil)
	_ Interface[string, int] = NoOp[string, int]{}
	_ Peeker[string, int]    = NoOp[string, int]{}
	_ Level[string, int]     = NoOp[string, int]{}
)
