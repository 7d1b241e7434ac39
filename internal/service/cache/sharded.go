package cache

import (
	"hash/fnv"
	"time"

	"github.com/guttosm/quote-service/internal/metrics"
)

const defaultShards = 16

// Sharded spreads keys over independent TTL caches so that tenants hashing to
// different shards never contend on the same lock.
type Sharded[V any] struct {
	name   string
	shards []*TTL[V]
	mask   uint32
}

// NewSharded creates a sharded cache. shards is rounded up to a power of two
// and capacity is split evenly between them, with at least one entry each.
func NewSharded[V any](name string, capacity int, ttl time.Duration, shards int) *Sharded[V] {
	if shards <= 0 {
		shards = defaultShards
	}
	n := 1
	for n < shards {
		n <<= 1
	}

	perShard := max(capacity/n, 1)
	s := &Sharded[V]{name: name, shards: make([]*TTL[V], n), mask: uint32(n - 1)}
	for i := range s.shards {
		s.shards[i] = newTTL[V](name, perShard, ttl)
	}
	metrics.UpdateCacheMetrics(name, 0, perShard*n)
	return s
}

func (s *Sharded[V]) shard(key string) *TTL[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()&s.mask]
}

func (s *Sharded[V]) Get(key string) (V, bool) {
	return s.shard(key).Get(key)
}

func (s *Sharded[V]) Set(key string, value V) {
	s.shard(key).Set(key, value)
	s.publish()
}

func (s *Sharded[V]) Invalidate(key string) {
	s.shard(key).Invalidate(key)
	s.publish()
}

func (s *Sharded[V]) Clear() {
	for _, sh := range s.shards {
		sh.Clear()
	}
	s.publish()
}

// Metrics sums the counters of every shard.
func (s *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, sh := range s.shards {
		total.add(sh.Metrics())
	}
	return total
}

func (s *Sharded[V]) publish() {
	m := s.Metrics()
	metrics.UpdateCacheMetrics(s.name, m.Size, m.Capacity)
}
