package cachekit

// Stats is a point-in-time snapshot of a cache's counters. Counters are
// updated under the cache's own lock, never with per-field atomics, so a
// snapshot is always internally consistent.
type Stats struct {
	// Hits counts lookups that found an entry.
	Hits uint64
	// Misses counts lookups that found nothing.
	Misses uint64
	// Evictions counts entries dropped by capacity pressure.
	Evictions uint64
	// Removals counts entries dropped explicitly, via Remove, RemoveOldest,
	// or Clear.
	Removals uint64
}

// Lookups returns the total number of lookups observed.
func (s Stats) Lookups() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns the fraction of lookups that hit, in [0, 1]. It returns 0
// when no lookups have been observed.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// add accumulates other into s.
func (s *Stats) add(other Stats) {
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.Evictions += other.Evictions
	s.Removals += other.Removals
}
