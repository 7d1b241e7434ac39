package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/logger"
	"github.com/guttosm/quote-service/internal/metrics"
)

// Recovery turns a handler panic into a 500 and logs it with the stack, the
// request ID and the shop the request was acting for.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			route := metrics.Route(c)
			metrics.RecordPanic(route)
			log := logger.Logger()
			log.Error().
				Str("request_id", GetRequestID(c)).
				Str("tenant", GetTenant(c)).
				Str("route", route).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Handler panicked")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			Abort(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
		}()
		c.Next()
	}
}
