package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.POST("/api/v1/quotes/:tenant", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.POST("/api/v1/quotes/:tenant/pdf", func(c *gin.Context) {
		c.String(http.StatusServiceUnavailable, "no chrome")
	})

	tests := []struct {
		name   string
		path   string
		route  string
		status int
	}{
		{name: "tenant collapses into the route template", path: "/api/v1/quotes/acme", route: "/api/v1/quotes/:tenant", status: http.StatusOK},
		{name: "error status", path: "/api/v1/quotes/acme/pdf", route: "/api/v1/quotes/:tenant/pdf", status: http.StatusServiceUnavailable},
		{name: "unknown path", path: "/wp-login.php", route: unmatchedRoute, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := HTTPRequestTotal.WithLabelValues(http.MethodPost, tt.route, strconv.Itoa(tt.status))
			before := testutil.ToFloat64(counter)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordRateLimitedAndPanic(t *testing.T) {
	limited := testutil.ToFloat64(RateLimitedTotal.WithLabelValues("tenant"))
	panics := testutil.ToFloat64(PanicsTotal.WithLabelValues("/api/v1/quotes/:tenant"))

	RecordRateLimited("tenant")
	RecordPanic("/api/v1/quotes/:tenant")

	assert.Equal(t, limited+1, testutil.ToFloat64(RateLimitedTotal.WithLabelValues("tenant")))
	assert.Equal(t, panics+1, testutil.ToFloat64(PanicsTotal.WithLabelValues("/api/v1/quotes/:tenant")))
}

func TestRecordQuoteCalculation(t *testing.T) {
	before := testutil.ToFloat64(QuoteCalculationsTotal.WithLabelValues("console", "success"))

	RecordQuoteCalculation("console", "success", 2*time.Millisecond, 2183.94)
	RecordQuoteCalculation("portal", "validation_error", time.Millisecond, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(QuoteCalculationsTotal.WithLabelValues("console", "success")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(QuoteCalculationsTotal.WithLabelValues("portal", "validation_error")), 1.0)
}

func TestRecordGuardrail(t *testing.T) {
	before := testutil.ToFloat64(GuardrailTriggeredTotal.WithLabelValues("acme"))
	RecordGuardrail("acme")
	assert.Equal(t, before+1, testutil.ToFloat64(GuardrailTriggeredTotal.WithLabelValues("acme")))
}

func TestRecordEmail(t *testing.T) {
	sent := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("customer", "sent"))
	failed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("shop", "failed"))

	RecordEmail("customer", nil)
	RecordEmail("shop", errors.New("postmark down"))

	assert.Equal(t, sent+1, testutil.ToFloat64(EmailsSentTotal.WithLabelValues("customer", "sent")))
	assert.Equal(t, failed+1, testutil.ToFloat64(EmailsSentTotal.WithLabelValues("shop", "failed")))
}

func TestRecordPDFRender(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordPDFRender(300*time.Millisecond, nil)
		RecordPDFRender(time.Second, errors.New("chrome missing"))
	})
}

func TestRecordCacheOperation(t *testing.T) {
	hits := CacheOperationsTotal.WithLabelValues("pricing_config", "get", "hit")
	before := testutil.ToFloat64(hits)
	RecordCacheOperation("pricing_config", "get", "hit")
	RecordCacheOperation("pricing_config", "get", "miss")
	RecordCacheOperation("idempotency", "get", "hit")
	assert.Equal(t, before+1, testutil.ToFloat64(hits))
}

func TestUpdateCacheMetrics(t *testing.T) {
	UpdateCacheMetrics("pricing_config", 50, 100)
	UpdateCacheMetrics("idempotency", 3, 1000)
	assert.Equal(t, 50.0, testutil.ToFloat64(CacheEntries.WithLabelValues("pricing_config")))
	assert.Equal(t, 100.0, testutil.ToFloat64(CacheCapacity.WithLabelValues("pricing_config")))
	assert.Equal(t, 3.0, testutil.ToFloat64(CacheEntries.WithLabelValues("idempotency")))
}

func TestCircuitMetrics(t *testing.T) {
	SetCircuitState("mongodb-logs", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitState.WithLabelValues("mongodb-logs")))

	before := testutil.ToFloat64(CircuitRejectedTotal.WithLabelValues("postmark"))
	RecordCircuitRejected("postmark")
	assert.Equal(t, before+1, testutil.ToFloat64(CircuitRejectedTotal.WithLabelValues("postmark")))
}
