package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

const (
	// IdempotencyKeyHeader carries the client's retry key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the replay store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"

	idempotencyCacheName = "idempotency"
	maxIdempotencyKeyLen = 255
)

// replayHeaders are copied from the first response onto replays. Request ids
// and transport headers belong to the retry itself.
var replayHeaders = []string{"Content-Type", "Content-Language", "Content-Disposition", "Location"}

// Replay is a stored 2xx response.
type Replay struct {
	Status int
	Header http.Header
	Body   []byte
}

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Store cache.Store[*Replay]
}

// DefaultIdempotencyConfig keeps up to capacity replays for ttl each.
func DefaultIdempotencyConfig(capacity int, ttl time.Duration) IdempotencyConfig {
	return IdempotencyConfig{Store: cache.NewTTL[*Replay](idempotencyCacheName, capacity, ttl)}
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key on POST, PUT and PATCH. A key only matches the same method,
// path and body. A duplicate that arrives while the first request is still
// running gets 409 instead of running twice.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.Store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	var inflight sync.Map

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			Abort(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequest)
			return
		}

		fingerprint, err := requestFingerprint(key, c.Request)
		if err != nil {
			Abort(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}

		if replay, ok := cfg.Store.Get(fingerprint); ok {
			writeReplay(c, replay)
			return
		}

		if _, busy := inflight.LoadOrStore(fingerprint, struct{}{}); busy {
			Abort(c, http.StatusConflict, i18n.ErrKeyConflict)
			return
		}
		defer inflight.Delete(fingerprint)

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		cfg.Store.Set(fingerprint, &Replay{
			Status: status,
			Header: pickHeaders(rec.Header()),
			Body:   rec.body.Bytes(),
		})
		log.Debug().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Stored idempotent response")
	}
}

func writeReplay(c *gin.Context, r *Replay) {
	for name, values := range r.Header {
		for _, v := range values {
			c.Writer.Header().Add(name, v)
		}
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Status(r.Status)
	_, _ = c.Writer.Write(r.Body)
	c.Abort()
}

// requestFingerprint hashes the key with the method, path and body, and puts
// the body back for the handler.
func requestFingerprint(key string, req *http.Request) (string, error) {
	h := sha256.New()
	for _, part := range []string{key, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func pickHeaders(src http.Header) http.Header {
	out := make(http.Header, len(replayHeaders))
	for _, name := range replayHeaders {
		if v := src.Values(name); len(v) > 0 {
			out[name] = append([]string(nil), v...)
		}
	}
	return out
}

// recordingWriter tees the response body.
type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
