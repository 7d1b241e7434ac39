//go:build !integration

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog points the global logger at a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "no log output")
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &out))
	return out
}

func TestLevelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   zerolog.Level
	}{
		{http.StatusOK, zerolog.InfoLevel},
		{http.StatusFound, zerolog.InfoLevel},
		{http.StatusBadRequest, zerolog.WarnLevel},
		{http.StatusUnprocessableEntity, zerolog.WarnLevel},
		{http.StatusInternalServerError, zerolog.ErrorLevel},
		{http.StatusServiceUnavailable, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, levelForStatus(tt.status))
		})
	}
}

func TestRequestLogger_LogLine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "info"},
		{name: "bad request", status: http.StatusBadRequest, wantLevel: "warn"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			router := gin.New()
			router.Use(RequestID(), RequestLogger(nil))
			router.POST("/api/v1/quotes/:tenant", func(c *gin.Context) {
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/acme", nil)
			req.Header.Set("X-Request-ID", "req-42")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			line := lastLine(t, buf)
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "HTTP request", line["message"])
			assert.Equal(t, "req-42", line["request_id"])
			assert.Equal(t, "/api/v1/quotes/acme", line["path"])
			assert.Equal(t, "/api/v1/quotes/:tenant", line["route"])
			assert.EqualValues(t, tt.status, line["status_code"])
		})
	}
}

func TestRequestLogger_PersistsEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captureLog(t)

	sink := &recordingLogs{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 8, BatchSize: 1, FlushInterval: time.Hour})

	router := gin.New()
	router.Use(RequestID())
	router.Use(func(c *gin.Context) {
		c.Set(ContextKeyTenant, "acme")
		c.Next()
	})
	router.Use(RequestLogger(al))
	router.GET("/api/v1/pricing/acme", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/acme", nil)
	req.Header.Set("User-Agent", "shop-console/1.0")
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, al.Close(context.Background()))
	require.Len(t, sink.batches, 1)
	entry := sink.batches[0][0]
	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, "acme", entry.Tenant)
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.Equal(t, "/api/v1/pricing/acme", entry.Path)
	assert.Equal(t, http.StatusNotFound, entry.StatusCode)
	assert.Equal(t, "shop-console/1.0", entry.UserAgent)
	assert.Equal(t, assert.AnError.Error(), entry.Error)
	assert.NotEmpty(t, entry.RequestID)
}

func TestRequestLogger_QuietPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			buf := captureLog(t)
			sink := &recordingLogs{}
			al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 8, BatchSize: 1, FlushInterval: time.Hour})

			router := gin.New()
			router.Use(RequestLogger(al))
			router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

			require.NoError(t, al.Close(context.Background()))
			assert.Empty(t, sink.batches)
			assert.Empty(t, buf.String(), "debug line is below the info threshold")
		})
	}
}

func TestRequestLogger_QuietPathFailureStillLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, "error", lastLine(t, buf)["level"])
}
