package cachekit

// Option configures a cache during construction. The same options apply to
// New and NewSharded.
type Option[K comparable, V any] func(*config[K, V]) error

type config[K comparable, V any] struct {
	callbacks   []EvictionCallback[K, V]
	preallocate bool
}

// applyOptions folds opts into a config, stopping at the first error.
func applyOptions[K comparable, V any](opts []Option[K, V]) (config[K, V], error) {
	var cfg config[K, V]
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config[K, V]{}, err
		}
	}
	return cfg, nil
}

// WithEvictionCallback registers fn at construction, before the cache serves
// any operation. Callbacks registered this way stay attached for the life of
// the cache; use OnEvict for detachable ones.
func WithEvictionCallback[K comparable, V any](fn EvictionCallback[K, V]) Option[K, V] {
	return func(cfg *config[K, V]) error {
		if fn == nil {
			return ErrNilCallback
		}
		cfg.callbacks = append(cfg.callbacks, fn)
		return nil
	}
}

// WithPreallocation sizes the key index for a full cache up front, trading
// idle memory for fewer map growths while the cache warms.
func WithPreallocation[K comparable, V any]() Option[K, V] {
	return func(cfg *config[K, V]) error {
		cfg.preallocate = true
		return nil
	}
}
