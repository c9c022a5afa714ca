// Package registry provides explicit, injectable registries of named cache
// builders.
//
// A Registry replaces package-level singletons and static factory maps: it
// is constructed where it is needed, passed to the code that uses it, and
// two registries never share state, so every test can work against its own
// isolated instance.
//
// # Usage
//
//	caches := registry.New[*cachekit.Cache[string, []byte]]()
//
//	caches.MustRegister("sessions", func() (*cachekit.Cache[string, []byte], error) {
//		return cachekit.New[string, []byte](10_000)
//	})
//	caches.MustRegister("avatars", func() (*cachekit.Cache[string, []byte], error) {
//		return cachekit.New[string, []byte](500)
//	})
//
//	sessions, err := caches.Open("sessions") // built on first use, then shared
//	scratch, err := caches.Build("sessions") // always a fresh instance
//
// Open gives the registry lazy-singleton behavior per name: the builder runs
// on the first Open and every later Open returns the same instance. Build
// bypasses the shared instance entirely.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Builders run while the registry
// lock is held, so a builder must not call back into the same registry.
package registry
