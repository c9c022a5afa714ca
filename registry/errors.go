package registry

import "errors"

// Common errors
var (
	// ErrNilBuilder is returned when a nil builder is registered
	ErrNilBuilder = errors.New("builder cannot be nil")

	// ErrDuplicateName is returned when a name is registered twice
	ErrDuplicateName = errors.New("name already registered")

	// ErrUnknownName is returned when no builder is registered under the requested name
	ErrUnknownName = errors.New("no builder registered for name")
)
