package cachekit

import (
	"context"
	"fmt"
	"sync"
)

// LoaderFunc computes the value for a key that is absent from the cache.
// Loaders may block, so they receive the caller's context.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loading is a read-through wrapper around a cache: Get returns the cached
// value when present and otherwise runs the loader, stores the result, and
// returns it. Concurrent Gets for the same absent key share a single loader
// call; Gets for different keys load independently.
type Loading[K comparable, V any] struct {
	backing ReadWriter[K, V]
	loader  LoaderFunc[K, V]

	mu       sync.Mutex
	inflight map[K]*flight[V]
}

// flight is one in-progress load. done is closed only after value and err
// are final, so waiters reading them after done never race the owner.
type flight[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// NewLoading creates a loading cache over backing. It returns ErrNilBacking
// or ErrNilLoader when either argument is nil.
func NewLoading[K comparable, V any](backing ReadWriter[K, V], loader LoaderFunc[K, V]) (*Loading[K, V], error) {
	if backing == nil {
		return nil, ErrNilBacking
	}
	if loader == nil {
		return nil, ErrNilLoader
	}
	return &Loading[K, V]{
		backing:  backing,
		loader:   loader,
		inflight: make(map[K]*flight[V]),
	}, nil
}

// MustNewLoading creates a loading cache over backing.
// Panics if construction fails.
func MustNewLoading[K comparable, V any](backing ReadWriter[K, V], loader LoaderFunc[K, V]) *Loading[K, V] {
	l, err := NewLoading(backing, loader)
	if err != nil {
		panic(fmt.Sprintf("failed to create loading cache: %v", err))
	}
	return l
}

// Get returns the value for key, running the loader on a miss. When several
// goroutines miss the same key at once, exactly one runs the loader and the
// rest wait for its result; a waiter gives up and returns ctx.Err() when its
// context is done first. Loader errors are returned without being cached, so
// a later Get tries again. A panicking loader panics the goroutine that ran
// it, and any waiting goroutines receive ErrLoaderPanic.
func (l *Loading[K, V]) Get(ctx context.Context, key K) (V, error) {
	if v, ok := l.backing.Get(key); ok {
		return v, nil
	}

	l.mu.Lock()
	// Re-check under the lock: the load may have completed between the miss
	// above and acquiring the lock.
	if v, ok := l.backing.Get(key); ok {
		l.mu.Unlock()
		return v, nil
	}
	if f, ok := l.inflight[key]; ok {
		l.mu.Unlock()
		return await(ctx, f)
	}
	f := &flight[V]{done: make(chan struct{})}
	l.inflight[key] = f
	l.mu.Unlock()

	return l.load(ctx, key, f)
}

// load runs the loader as the owner of f, publishes the outcome, and
// retires the flight. The loader runs outside every lock.
func (l *Loading[K, V]) load(ctx context.Context, key K, f *flight[V]) (V, error) {
	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("%w: %v", ErrLoaderPanic, r)
			l.retire(key, f)
			panic(r)
		}
	}()

	v, err := l.loader(ctx, key)
	if err != nil {
		var zero V
		f.err = err
		l.retire(key, f)
		return zero, err
	}

	f.value = v
	l.backing.Put(key, v)
	l.retire(key, f)
	return v, nil
}

// retire removes f from the in-flight table and wakes its waiters. The
// outcome fields of f must be final before retire is called.
func (l *Loading[K, V]) retire(key K, f *flight[V]) {
	l.mu.Lock()
	delete(l.inflight, key)
	l.mu.Unlock()
	close(f.done)
}

// await blocks until f completes or ctx is done, whichever comes first.
func await[V any](ctx context.Context, f *flight[V]) (V, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
