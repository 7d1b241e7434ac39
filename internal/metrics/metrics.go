// Package metrics provides Prometheus metrics for the quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuoteCalculationsTotal counts engine runs by origination channel and outcome.
	QuoteCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_calculations_total",
			Help: "Total number of quote calculations",
		},
		[]string{"channel", "result"},
	)

	// QuoteCalculationDuration tracks engine run time.
	QuoteCalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_calculation_duration_seconds",
			Help:    "Quote calculation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"channel"},
	)

	// QuoteGrandTotal observes quoted grand totals in dollars.
	QuoteGrandTotal = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_grand_total",
			Help:    "Grand total of computed quotes",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		},
		[]string{"channel"},
	)

	// GuardrailTriggeredTotal counts quotes stopped by the minimum-quantity guardrail.
	GuardrailTriggeredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_guardrail_triggered_total",
			Help: "Total number of quotes below the tenant minimum",
		},
		[]string{"tenant"},
	)

	// EmailsSentTotal counts outbound mail by kind (customer, shop) and status.
	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"kind", "status"},
	)

	// PDFRenderDuration tracks quote PDF rendering.
	PDFRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_pdf_render_duration_seconds",
			Help:    "Quote PDF render duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"status"},
	)

	// CacheOperationsTotal counts in-process cache lookups and writes, per cache.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "In-process cache operations by cache, kind and result",
		},
		[]string{"cache", "operation", "result"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Entries currently held per cache",
		},
		[]string{"cache"},
	)

	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Configured entry limit per cache",
		},
		[]string{"cache"},
	)

	// RateLimitedTotal counts requests rejected with 429, by limiter scope.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"scope"},
	)

	// PanicsTotal counts handler panics turned into 500s.
	PanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Handler panics recovered",
		},
		[]string{"route"},
	)

	// CircuitState reports each breaker's state: 0 closed, 1 open, 2 half-open.
	CircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CircuitRejectedTotal counts calls refused without reaching the dependency.
	CircuitRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejected_total",
			Help: "Calls rejected by an open circuit breaker",
		},
		[]string{"name"},
	)
)

// unmatchedRoute labels requests gin could not route, keeping path cardinality bounded.
const unmatchedRoute = "unmatched"

// PrometheusMiddleware records request count and latency labelled by route
// template, so /quotes/acme and /quotes/demo share one series.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := Route(c)
		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}

// Route returns the matched route template, or "unmatched".
func Route(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

// RecordRateLimited records a 429 from the "ip" or "tenant" limiter.
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}

// RecordPanic records a recovered panic on route.
func RecordPanic(route string) {
	PanicsTotal.WithLabelValues(route).Inc()
}

// RecordQuoteCalculation records one engine run. grandTotal is ignored unless result is "success".
func RecordQuoteCalculation(channel, result string, duration time.Duration, grandTotal float64) {
	QuoteCalculationDuration.WithLabelValues(channel).Observe(duration.Seconds())
	QuoteCalculationsTotal.WithLabelValues(channel, result).Inc()
	if result == "success" {
		QuoteGrandTotal.WithLabelValues(channel).Observe(grandTotal)
	}
}

// RecordGuardrail records a quote stopped by the minimum-quantity guardrail.
func RecordGuardrail(tenant string) {
	GuardrailTriggeredTotal.WithLabelValues(tenant).Inc()
}

// RecordEmail records an outbound email attempt.
func RecordEmail(kind string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	EmailsSentTotal.WithLabelValues(kind, status).Inc()
}

// RecordPDFRender records a PDF render.
func RecordPDFRender(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	PDFRenderDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates a cache's size and capacity gauges.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheEntries.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// SetCircuitState publishes a breaker's state.
func SetCircuitState(name string, state int) {
	CircuitState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitRejected records a call short-circuited by breaker name.
func RecordCircuitRejected(name string) {
	CircuitRejectedTotal.WithLabelValues(name).Inc()
}
