package registry

import (
	"fmt"
	"slices"
	"sync"
)

// Builder constructs one instance of T.
// Should be fast: builders run under the registry lock.
type Builder[T any] func() (T, error)

// Registry maps names to builders of T and hands out instances on demand.
// The zero value is not usable; construct with New.
type Registry[T any] struct {
	mu       sync.Mutex
	builders map[string]Builder[T]
	opened   map[string]T
}

// New returns a new, empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		builders: make(map[string]Builder[T]),
		opened:   make(map[string]T),
	}
}

// Register associates name with a builder. It returns ErrNilBuilder for a
// nil builder and ErrDuplicateName when the name is already taken.
func (r *Registry[T]) Register(name string, build Builder[T]) error {
	if build == nil {
		return fmt.Errorf("%w: %q", ErrNilBuilder, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.builders[name] = build
	return nil
}

// MustRegister associates name with a builder. Panics if registration fails,
// following the fail-fast pattern for registries wired up at program start.
func (r *Registry[T]) MustRegister(name string, build Builder[T]) {
	if err := r.Register(name, build); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// Open returns the instance registered under name, running the builder on
// first use and handing the same instance to every later call. A builder
// error is returned as is and nothing is memoized, so the next Open tries
// again.
func (r *Registry[T]) Open(name string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if instance, ok := r.opened[name]; ok {
		return instance, nil
	}

	instance, err := r.build(name)
	if err != nil {
		return instance, err
	}
	r.opened[name] = instance
	return instance, nil
}

// Build constructs a fresh instance of name on every call, independent of
// the instance Open hands out.
func (r *Registry[T]) Build(name string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.build(name)
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Must be called with lock held.
func (r *Registry[T]) build(name string) (T, error) {
	builder, ok := r.builders[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	instance, err := builder()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("build %q: %w", name, err)
	}
	return instance, nil
}
