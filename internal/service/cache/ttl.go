package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/guttosm/quote-service/internal/metrics"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a bounded LRU whose entries also expire after a fixed lifetime.
// It is safe for concurrent use.
type TTL[V any] struct {
	name     string
	ttl      time.Duration
	capacity int
	// report is false for shards; the owning Sharded publishes the gauges.
	report bool
	now    func() time.Time

	mu    sync.Mutex
	items *lru.Cache

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewTTL creates a cache holding at most capacity entries for ttl each.
// name labels the cache's Prometheus series.
func NewTTL[V any](name string, capacity int, ttl time.Duration) *TTL[V] {
	c := newTTL[V](name, capacity, ttl)
	c.report = true
	metrics.UpdateCacheMetrics(name, 0, c.capacity)
	return c
}

func newTTL[V any](name string, capacity int, ttl time.Duration) *TTL[V] {
	capacity = max(capacity, 1)
	return &TTL[V]{
		name:     name,
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		items:    lru.New(capacity),
	}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.items.Get(key)
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}
	e := raw.(entry[V])
	if !c.now().Before(e.expiresAt) {
		c.items.Remove(key)
		c.misses.Add(1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		c.publish()
		return zero, false
	}

	c.hits.Add(1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return e.value, true
}

func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.items.Get(key)
	before := c.items.Len()
	c.items.Add(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})

	switch {
	case exists:
		metrics.RecordCacheOperation(c.name, "set", "replace")
	case c.items.Len() == before:
		c.evictions.Add(1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
		metrics.RecordCacheOperation(c.name, "set", "success")
	default:
		metrics.RecordCacheOperation(c.name, "set", "success")
	}
	c.publish()
}

func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Remove(key)
	c.publish()
}

// Clear drops every entry and resets the hit and miss counters.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
	c.publish()
}

// Len counts held entries, including expired ones not yet read.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

func (c *TTL[V]) Metrics() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
		Capacity:  c.capacity,
	}
}

// publish must be called with mu held.
func (c *TTL[V]) publish() {
	if c.report {
		metrics.UpdateCacheMetrics(c.name, c.items.Len(), c.capacity)
	}
}
