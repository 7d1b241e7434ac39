package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/logger"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/rs/zerolog"
)

// Health and scrape endpoints are logged at debug and never persisted.
var quietPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// RequestLogger writes one structured line per request and hands a copy to al
// for persistence. al may be nil.
func RequestLogger(al *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		tenant := GetTenant(c)

		_, quiet := quietPaths[path]
		level := levelForStatus(status)
		if quiet && level == zerolog.InfoLevel {
			level = zerolog.DebugLevel
		}

		log := logger.Logger()
		ev := log.WithLevel(level).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", metrics.Route(c)).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())
		if tenant != "" {
			ev = ev.Str("tenant", tenant)
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("error", c.Errors.Last().Error())
		}
		ev.Msg("HTTP request")

		if quiet || al == nil {
			return
		}

		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      level.String(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Tenant:     tenant,
			Method:     c.Request.Method,
			Path:       path,
			StatusCode: status,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		al.Log(entry)
	}
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
