// Package cachekit provides generic, thread-safe, fixed-capacity caches with
// least-recently-used eviction, plus composable wrappers for sharding,
// tiering, and read-through loading.
//
// The package is built around a single mechanical core: a hash map for O(1)
// key lookup paired with a doubly-linked list that maintains recency order.
// Everything else (shards, tiers, loaders, statistics, eviction callbacks)
// composes on top of that core through small capability interfaces.
//
// # Key Features
//
//   - Generic implementation supporting any comparable key type and any value type
//   - Thread-safe operations with mutex-based synchronization
//   - Strict LRU eviction when capacity is exceeded; both reads and writes
//     refresh recency
//   - Eviction callbacks with attach/detach semantics and eviction reasons
//   - Hit/miss/eviction statistics for observability
//   - Sharded variant for reduced lock contention under high concurrency
//   - Tiered variant that chains caches with automatic promotion on hit
//   - Loading variant that deduplicates concurrent loads per key
//   - O(1) operations for Get, Put, Peek, and Remove
//
// # Usage
//
// Create a cache with a fixed capacity:
//
//	c, err := cachekit.New[string, int](100)
//	if err != nil {
//		// capacity was not positive
//	}
//
// Or panic on a bad capacity, for package-level variables and other places
// where construction cannot fail at runtime:
//
//	c := cachekit.MustNew[string, int](100)
//
// Basic operations:
//
//	c.Put("answer", 42)
//
//	if v, ok := c.Get("answer"); ok {
//		// v == 42; the entry is now the most recently used
//	}
//
//	if _, ok := c.Remove("answer"); ok {
//		// entry existed and is gone; other entries keep their order
//	}
//
// Peek and Contains read without refreshing recency:
//
//	v, ok := c.Peek("answer") // does not affect eviction order
//	_ = c.Contains("answer")  // neither does this
//
// # Eviction Callbacks
//
// Callbacks observe entries leaving the cache, together with the reason
// (capacity pressure, explicit removal, or Clear). They can be registered at
// construction or attached later:
//
//	c := cachekit.MustNew[string, *os.File](10,
//		cachekit.WithEvictionCallback(func(key string, f *os.File, reason cachekit.EvictionReason) {
//			f.Close()
//		}),
//	)
//
//	detach := c.OnEvict(func(key string, f *os.File, reason cachekit.EvictionReason) {
//		slog.Info("entry dropped", "key", key, "reason", reason)
//	})
//	defer detach()
//
// Callbacks are invoked after the cache's internal lock is released, so they
// may safely call back into the cache. They may run concurrently from
// multiple goroutines and must be safe for concurrent use.
//
// # Statistics
//
// Every cache tracks its effectiveness:
//
//	stats := c.Stats()
//	fmt.Printf("hit rate: %.2f", stats.HitRate())
//
// The metrics subpackage adapts these counters to a Prometheus collector.
//
// # Composition
//
// The Sharded, Tiered, and Loading types all speak the same capability
// interfaces as Cache, so they nest freely:
//
//	hot := cachekit.MustNew[string, []byte](1_000)
//	warm, _ := cachekit.NewSharded[string, []byte](100_000, 16)
//	both, _ := cachekit.NewTiered[string, []byte](hot, warm)
//
//	pages, _ := cachekit.NewLoading[string, []byte](both, fetchPage)
//	body, err := pages.Get(ctx, "https://example.com")
//
// # Thread Safety
//
// All operations on all types are safe for concurrent use. The core cache
// serializes every operation, including Get (which mutates recency order),
// through a single mutex covering the map and the recency list as a unit.
// Use Sharded when that single lock becomes a bottleneck.
//
// # Performance Characteristics
//
//   - Get, Put, Peek, Contains, Remove: O(1) average case
//   - Keys, Clear: O(n)
//   - Memory overhead: a map entry plus a list element per cached entry
//
// # Capacity Management
//
// Capacity is fixed at construction and never changes. When an insert would
// exceed it, the least recently used entry is evicted first; eviction is
// silent and expected, never an error. A lookup of a missing key is likewise
// a normal outcome, reported as (zero value, false).
package cachekit
