package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	defaultNumShards = 16
	sweepInterval    = time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// RateLimiter hands out one token bucket per key. A bucket holds up to
// requests tokens and refills the whole amount over window. Buckets are spread
// over shards so unrelated keys rarely share a lock.
type RateLimiter struct {
	shards   []*limiterShard
	requests int
	window   time.Duration
	limit    rate.Limit
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing requests per window for each key.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(requests, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with an explicit shard count.
func NewShardedRateLimiter(requests int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &RateLimiter{
		shards:   make([]*limiterShard, numShards),
		requests: requests,
		window:   window,
		limit:    rate.Every(window / time.Duration(requests)),
		stopCh:   make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}

	go rl.sweep()
	return rl
}

func (rl *RateLimiter) shardFor(key string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// Allow takes a token from key's bucket. When the bucket is empty it reports
// how long until the next token.
func (rl *RateLimiter) Allow(key string) (ok bool, remaining int, retryAfter time.Duration) {
	shard := rl.shardFor(key)
	now := time.Now()

	shard.mu.Lock()
	b, exists := shard.buckets[key]
	if !exists {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.requests)}
		shard.buckets[key] = b
	}
	b.lastSeen = now
	shard.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, int(math.Max(0, math.Floor(b.limiter.TokensAt(now)))), 0
}

// ByIP limits requests per client IP.
func (rl *RateLimiter) ByIP() gin.HandlerFunc {
	return rl.handler("ip", func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// ByTenant limits console requests per shop. Requests without a console token
// fall back to the client IP.
func (rl *RateLimiter) ByTenant() gin.HandlerFunc {
	return rl.handler("tenant", func(c *gin.Context) string {
		if v, ok := c.Get(ContextKeyTenant); ok {
			if tenant, _ := v.(string); tenant != "" {
				return "tenant:" + tenant
			}
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) handler(scope string, keyOf func(*gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(rl.requests)
	return func(c *gin.Context) {
		ok, remaining, retryAfter := rl.Allow(keyOf(c))

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			metrics.RecordRateLimited(scope)
			Abort(c, http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// sweep drops buckets that have been idle long enough to have refilled.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			rl.evictIdle(now.Add(-rl.window))
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) evictIdle(before time.Time) {
	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, b := range shard.buckets {
			if b.lastSeen.Before(before) {
				delete(shard.buckets, key)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Done is closed once Stop has been called.
func (rl *RateLimiter) Done() <-chan struct{} {
	return rl.stopCh
}

// Keys returns the number of tracked keys.
func (rl *RateLimiter) Keys() int {
	n := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		n += len(shard.buckets)
		shard.mu.Unlock()
	}
	return n
}
