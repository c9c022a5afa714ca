package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/cachekit"
)

const subsystem = "cache"

// Source is the view of a cache the collector scrapes. Cache and Sharded
// both satisfy it.
type Source interface {
	Stats() cachekit.Stats
	Len() int
	Cap() int
}

// Collector reads cache statistics at scrape time and exposes them as
// Prometheus metrics. It implements prometheus.Collector and is safe for
// concurrent use.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]Source

	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	removals  *prometheus.Desc
	entries   *prometheus.Desc
	capacity  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector exposing metrics under the given
// namespace: namespace "app" yields app_cache_hits_total and friends.
// Caches are attached with Track.
func NewCollector(namespace string) *Collector {
	labels := []string{"cache"}
	return &Collector{
		sources: make(map[string]Source),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "hits_total"),
			"Total number of lookups that found an entry.",
			labels, nil,
		),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "misses_total"),
			"Total number of lookups that found nothing.",
			labels, nil,
		),
		evictions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "evictions_total"),
			"Total number of entries dropped by capacity pressure.",
			labels, nil,
		),
		removals: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "removals_total"),
			"Total number of entries removed explicitly.",
			labels, nil,
		),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "entries"),
			"Current number of cached entries.",
			labels, nil,
		),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "capacity"),
			"Maximum number of entries the cache can hold.",
			labels, nil,
		),
	}
}

// Track registers src under name, replacing any source tracked under the
// same name. Panics if src is nil.
func (c *Collector) Track(name string, src Source) {
	if src == nil {
		panic(fmt.Sprintf("metrics: source for cache %q cannot be nil", name))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// Forget stops tracking the source registered under name.
func (c *Collector) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.removals
	ch <- c.entries
	ch <- c.capacity
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, src := range c.sources {
		stats := src.Stats()
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses), name)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(stats.Evictions), name)
		ch <- prometheus.MustNewConstMetric(c.removals, prometheus.CounterValue, float64(stats.Removals), name)
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(src.Len()), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(src.Cap()), name)
	}
}
