package cachekit

import "errors"

// Common errors
var (
	// ErrInvalidCapacity is returned when a cache is created with a non-positive capacity
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// ErrInvalidShardCount is returned when a sharded cache is created with a non-positive shard count
	ErrInvalidShardCount = errors.New("shard count must be positive")

	// ErrNoLevels is returned when a tiered cache is created without any levels
	ErrNoLevels = errors.New("tiered cache requires at least one level")

	// ErrNilLevel is returned when a tiered cache is created with a nil level
	ErrNilLevel = errors.New("tiered cache level cannot be nil")

	// ErrNilBacking is returned when a loading cache is created without a backing cache
	ErrNilBacking = errors.New("backing cache cannot be nil")

	// ErrNilLoader is returned when a loading cache is created without a loader function
	ErrNilLoader = errors.New("loader cannot be nil")

	// ErrNilCallback is returned when a nil eviction callback is registered via options
	ErrNilCallback = errors.New("eviction callback cannot be nil")

	// ErrLoaderPanic is returned to goroutines waiting on a load whose loader panicked
	ErrLoaderPanic = errors.New("loader panicked")
)
