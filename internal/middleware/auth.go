package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/i18n"
)

const (
	// APIKeyHeader carries the admin API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is accepted when the header is absent.
	APIKeyQuery = "api_key"
	// ContextKeyAdminKey holds a short fingerprint of the admin key that
	// authenticated the request, for audit entries.
	ContextKeyAdminKey = "admin_key"
)

// APIKeyAuth guards admin routes. An empty key set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	keys := make([][]byte, 0, len(validKeys))
	for k, ok := range validKeys {
		if ok && k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		presented := c.GetHeader(APIKeyHeader)
		if presented == "" {
			presented = c.Query(APIKeyQuery)
		}
		if presented == "" {
			Abort(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !matchesAny(keys, []byte(presented)) {
			Abort(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(ContextKeyAdminKey, KeyFingerprint(presented))
		c.Next()
	}
}

// KeyFingerprint returns the first 8 hex characters of the key's SHA-256.
func KeyFingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}

func matchesAny(keys [][]byte, presented []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, presented)
	}
	return found == 1
}
