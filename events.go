package cachekit

// EvictionReason explains why an entry left a cache.
type EvictionReason uint8

const (
	// ReasonCapacity marks an eviction forced by capacity pressure.
	ReasonCapacity EvictionReason = iota
	// ReasonRemoved marks an explicit removal via Remove or RemoveOldest.
	ReasonRemoved
	// ReasonCleared marks a removal performed by Clear.
	ReasonCleared
)

// String implements fmt.Stringer.
func (r EvictionReason) String() string {
	switch r {
	case ReasonCapacity:
		return "capacity"
	case ReasonRemoved:
		return "removed"
	case ReasonCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// EvictionCallback observes an entry leaving a cache. Callbacks run after
// the cache's internal lock is released, so they may call back into the
// cache. They may be invoked from multiple goroutines at once and must be
// safe for concurrent use.
type EvictionCallback[K comparable, V any] func(key K, value V, reason EvictionReason)

// evictionHandler pairs a callback with the identity its detach function
// removes it by.
type evictionHandler[K comparable, V any] struct {
	id int
	fn EvictionCallback[K, V]
}

// handlerList is a multicast list of eviction callbacks. It is not safe for
// concurrent use; the owning cache guards it with its own lock.
type handlerList[K comparable, V any] struct {
	next     int
	handlers []evictionHandler[K, V]
}

// attach adds fn and returns the id to detach it by.
func (l *handlerList[K, V]) attach(fn EvictionCallback[K, V]) int {
	id := l.next
	l.next++
	l.handlers = append(l.handlers, evictionHandler[K, V]{id: id, fn: fn})
	return id
}

// detach removes the callback registered under id. Unknown ids are ignored,
// which makes detach functions idempotent.
func (l *handlerList[K, V]) detach(id int) {
	for i, h := range l.handlers {
		if h.id == id {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return
		}
	}
}

func (l *handlerList[K, V]) empty() bool {
	return len(l.handlers) == 0
}

// snapshot copies the callbacks in registration order.
func (l *handlerList[K, V]) snapshot() []EvictionCallback[K, V] {
	if len(l.handlers) == 0 {
		return nil
	}
	fns := make([]EvictionCallback[K, V], len(l.handlers))
	for i, h := range l.handlers {
		fns[i] = h.fn
	}
	return fns
}

// evictionEvent is one entry's departure, recorded under the lock for
// delivery after it is released.
type evictionEvent[K comparable, V any] struct {
	key    K
	value  V
	reason EvictionReason
}

// pendingEvictions collects the callback work an operation generates while
// holding the lock. The zero value is ready to use; dispatch must be called
// after the lock is released.
type pendingEvictions[K comparable, V any] struct {
	callbacks []EvictionCallback[K, V]
	events    []evictionEvent[K, V]
}

// stage records one event, snapshotting the handler list on first use so
// dispatch sees the callbacks as they were during the operation.
func (p *pendingEvictions[K, V]) stage(l *handlerList[K, V], key K, value V, reason EvictionReason) {
	if l.empty() {
		return
	}
	if p.callbacks == nil {
		p.callbacks = l.snapshot()
	}
	p.events = append(p.events, evictionEvent[K, V]{key: key, value: value, reason: reason})
}

// dispatch delivers every staged event to every snapshotted callback, in
// event order then registration order.
func (p *pendingEvictions[K, V]) dispatch() {
	for _, ev := range p.events {
		for _, fn := range p.callbacks {
			fn(ev.key, ev.value, ev.reason)
		}
	}
}
