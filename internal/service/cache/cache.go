// Package cache holds the in-process caches: tenant pricing snapshots and
// idempotent replays. Entries expire lazily on read and the least recently
// used entry goes first once a cache is full.
package cache

// Store is a string-keyed cache. Values are shared between readers and must be
// treated as immutable; replacing an entry stores a new value.
type Store[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
}

// Metrics is a point-in-time view of a cache's counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

func (m *Metrics) add(o Metrics) {
	m.Hits += o.Hits
	m.Misses += o.Misses
	m.Evictions += o.Evictions
	m.Size += o.Size
	m.Capacity += o.Capacity
}
