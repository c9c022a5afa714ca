// Package metrics exposes cache statistics as Prometheus metrics.
//
// Collector implements prometheus.Collector over any number of named
// caches. Counter and gauge values are read from each cache's Stats
// snapshot at scrape time; nothing is recorded on the cache's hot path.
//
// # Usage
//
//	collector := metrics.NewCollector("myapp")
//	collector.Track("sessions", sessions)
//	collector.Track("avatars", avatars)
//	prometheus.MustRegister(collector)
//
// Exposed series, each labeled with cache=<name>:
//
//	myapp_cache_hits_total
//	myapp_cache_misses_total
//	myapp_cache_evictions_total
//	myapp_cache_removals_total
//	myapp_cache_entries
//	myapp_cache_capacity
//
// Serving the registry over HTTP is left to the caller; the package only
// produces metrics.
package metrics
