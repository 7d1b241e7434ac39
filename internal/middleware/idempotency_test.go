package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteEndpoint struct {
	router *gin.Engine
	calls  atomic.Int32
}

// newQuoteEndpoint mimics a portal submission: 201 with JSON and a language.
// Bodies containing "reject" answer 422.
func newQuoteEndpoint(t *testing.T, cfg IdempotencyConfig) *quoteEndpoint {
	t.Helper()
	e := &quoteEndpoint{router: gin.New()}
	e.router.Use(RequestID(), Idempotency(cfg))
	handler := func(c *gin.Context) {
		n := e.calls.Add(1)
		body, _ := c.GetRawData()
		if strings.Contains(string(body), "reject") {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_config"})
			return
		}
		c.Header("Content-Language", "nl")
		c.JSON(http.StatusCreated, gin.H{"quote": n, "echo": string(body)})
	}
	e.router.POST("/portal/:tenant/quotes", handler)
	e.router.GET("/portal/:tenant/quotes", handler)
	return e
}

func (e *quoteEndpoint) do(method, path, key, body, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	const path = "/portal/acme/quotes"
	body := `{"items":[{"sku":"frame","qty":2}]}`

	tests := []struct {
		name         string
		first        [3]string // method, path, body
		second       [3]string
		key          string
		wantCalls    int32
		wantReplayed bool
		wantSecond   int
	}{
		{
			name:         "same key and body replays",
			first:        [3]string{http.MethodPost, path, body},
			second:       [3]string{http.MethodPost, path, body},
			key:          "retry-1",
			wantCalls:    1,
			wantReplayed: true,
			wantSecond:   http.StatusCreated,
		},
		{
			name:       "no key runs twice",
			first:      [3]string{http.MethodPost, path, body},
			second:     [3]string{http.MethodPost, path, body},
			wantCalls:  2,
			wantSecond: http.StatusCreated,
		},
		{
			name:       "different body is a new request",
			first:      [3]string{http.MethodPost, path, body},
			second:     [3]string{http.MethodPost, path, `{"items":[]}`},
			key:        "retry-2",
			wantCalls:  2,
			wantSecond: http.StatusCreated,
		},
		{
			name:       "different tenant is a new request",
			first:      [3]string{http.MethodPost, path, body},
			second:     [3]string{http.MethodPost, "/portal/globex/quotes", body},
			key:        "retry-3",
			wantCalls:  2,
			wantSecond: http.StatusCreated,
		},
		{
			name:       "reads are never replayed",
			first:      [3]string{http.MethodGet, path, ""},
			second:     [3]string{http.MethodGet, path, ""},
			key:        "retry-4",
			wantCalls:  2,
			wantSecond: http.StatusCreated,
		},
		{
			name:       "failures are not stored",
			first:      [3]string{http.MethodPost, path, `{"reject":true}`},
			second:     [3]string{http.MethodPost, path, `{"reject":true}`},
			key:        "retry-5",
			wantCalls:  2,
			wantSecond: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newQuoteEndpoint(t, DefaultIdempotencyConfig(16, time.Minute))

			first := e.do(tt.first[0], tt.first[1], tt.key, tt.first[2], "")
			second := e.do(tt.second[0], tt.second[1], tt.key, tt.second[2], "")

			assert.Equal(t, tt.wantCalls, e.calls.Load())
			assert.Equal(t, tt.wantSecond, second.Code)
			if tt.wantReplayed {
				assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
				assert.Equal(t, first.Body.String(), second.Body.String())
			} else {
				assert.Empty(t, second.Header().Get(IdempotencyReplayedHeader))
			}
		})
	}
}

func TestIdempotency_ReplayKeepsContentHeadersOnly(t *testing.T) {
	e := newQuoteEndpoint(t, DefaultIdempotencyConfig(16, time.Minute))

	first := e.do(http.MethodPost, "/portal/acme/quotes", "k", `{}`, "req-first")
	replay := e.do(http.MethodPost, "/portal/acme/quotes", "k", `{}`, "req-retry")

	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "req-first", first.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-retry", replay.Header().Get(RequestIDHeader), "the retry keeps its own request id")
	assert.Equal(t, "application/json; charset=utf-8", replay.Header().Get("Content-Type"))
	assert.Equal(t, "nl", replay.Header().Get("Content-Language"))
}

func TestIdempotency_ExpiredReplayRunsAgain(t *testing.T) {
	e := newQuoteEndpoint(t, DefaultIdempotencyConfig(16, 20*time.Millisecond))

	e.do(http.MethodPost, "/portal/acme/quotes", "k", `{}`, "")
	time.Sleep(40 * time.Millisecond)
	second := e.do(http.MethodPost, "/portal/acme/quotes", "k", `{}`, "")

	assert.Equal(t, int32(2), e.calls.Load())
	assert.Empty(t, second.Header().Get(IdempotencyReplayedHeader))
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	e := newQuoteEndpoint(t, DefaultIdempotencyConfig(16, time.Minute))

	w := e.do(http.MethodPost, "/portal/acme/quotes", strings.Repeat("k", maxIdempotencyKeyLen+1), `{}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, e.calls.Load())
}

func TestIdempotency_ConcurrentDuplicateConflicts(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	router := gin.New()
	router.Use(Idempotency(DefaultIdempotencyConfig(16, time.Minute)))
	router.POST("/quotes", func(c *gin.Context) {
		close(entered)
		<-release
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "double-click")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- send() }()
	<-entered

	dup := send()
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Contains(t, dup.Body.String(), `"error":"conflict"`)

	close(release)
	assert.Equal(t, http.StatusCreated, (<-done).Code)

	replay := send()
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(IdempotencyReplayedHeader))
}

func TestIdempotency_NoStorePassesThrough(t *testing.T) {
	e := newQuoteEndpoint(t, IdempotencyConfig{})

	e.do(http.MethodPost, "/portal/acme/quotes", "k", `{}`, "")
	e.do(http.MethodPost, "/portal/acme/quotes", "k", `{}`, "")

	assert.Equal(t, int32(2), e.calls.Load())
}

func TestRequestFingerprint_RestoresBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{"a":1}`))

	fp, err := requestFingerprint("k", req)
	require.NoError(t, err)
	assert.Len(t, fp, 64)

	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(rest), "handler still sees the body")

	other, err := requestFingerprint("k2", httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{"a":1}`)))
	require.NoError(t, err)
	assert.NotEqual(t, fp, other)
}
