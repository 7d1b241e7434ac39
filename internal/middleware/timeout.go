package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/i18n"
)

// Deadline bounds the request context to d. Handlers run on the request
// goroutine and are expected to honour ctx; if one returns without writing
// after the deadline passed, a 504 is written on its behalf.
func Deadline(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !c.Writer.Written() && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			Abort(c, http.StatusGatewayTimeout, i18n.ErrKeyTimeout)
		}
	}
}
