package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/service"
)

const (
	// ContextKeyTenant holds the tenant a console token was issued for.
	ContextKeyTenant = "tenant"
	// ContextKeyOperator holds the console operator named in the token subject.
	ContextKeyOperator = "console_operator"
)

// ConsoleAuth returns a middleware that validates console tokens for the route's
// :tenant. When the token service is disabled the middleware is a no-op.
func ConsoleAuth(tokens service.ConsoleTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil || !tokens.Enabled() {
			c.Next()
			return
		}

		raw, key := bearerToken(c.GetHeader("Authorization"))
		if key != "" {
			Abort(c, http.StatusUnauthorized, key)
			return
		}

		claims, err := tokens.Validate(raw, c.Param("tenant"))
		switch {
		case errors.Is(err, service.ErrTenantMismatch):
			Abort(c, http.StatusForbidden, i18n.ErrKeyTenantMismatch)
			return
		case err != nil:
			Abort(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(ContextKeyTenant, claims.Tenant)
		c.Set(ContextKeyOperator, claims.Subject)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. On failure it
// returns the message key to report.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", i18n.ErrKeyTokenRequired
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", i18n.ErrKeyInvalidToken
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", i18n.ErrKeyTokenRequired
	}
	return token, ""
}
