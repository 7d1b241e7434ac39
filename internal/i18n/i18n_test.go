//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	ErrKeyInvalidRequest, ErrKeyInvalidRequestBody, ErrKeyInternalError,
	ErrKeyAPIKeyRequired, ErrKeyInvalidAPIKey, ErrKeyNotFound, ErrKeyConflict, ErrKeyUnavailable,
	ErrKeyRateLimitExceeded, ErrKeyInvalidToken, ErrKeyTokenRequired,
	ErrKeyTimeout, ErrKeyInvalidConfig, ErrKeyTenantNotFound,
	ErrKeyTenantMismatch, ErrKeyPortalDisabled, ErrKeyDatabaseDisabled,
	ErrKeyPDFUnavailable, ErrKeyEmailUnavailable, ErrKeyEmailFailed, ErrKeyConsoleAuthDisabled, SuccessKeyQuoteCalculated,
}

func TestCatalogs(t *testing.T) {
	tr := NewTranslator()
	require.Equal(t, []string{"en", "nl", "pt"}, tr.Locales())

	for _, locale := range tr.Locales() {
		t.Run(locale, func(t *testing.T) {
			catalog := tr.catalogs[locale]
			assert.Len(t, catalog, len(allKeys), "no keys beyond the declared ones")
			for _, key := range allKeys {
				assert.NotEmpty(t, catalog[key], key)
			}
		})
	}
}

func TestTranslator_Translate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{"english", ErrKeyInvalidRequest, "en", "Invalid request"},
		{"portuguese", ErrKeyInvalidRequest, "pt", "Requisição inválida"},
		{"dutch", ErrKeyTenantNotFound, "nl", "Winkel niet gevonden"},
		{"unsupported locale uses english", ErrKeyTimeout, "fr", "The request timed out"},
		{"empty locale uses english", ErrKeyNotFound, "", "Not found"},
		{"unknown key echoes the key", "error.nope", "pt", "error.nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Translate(tt.key, tt.locale))
		})
	}
}

func TestTranslator_Match(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"pt-BR,pt;q=0.9,en;q=0.8", "pt"},
		{"nl-BE", "nl"},
		{"fr-FR, nl;q=0.5", "nl"},
		{"en-GB", "en"},
		{"ja", "en"},
		{"*", "en"},
		{";;;=", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.header))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(AcceptLanguageHeader, "pt-PT")

	assert.Equal(t, "pt", GetLocale(c))
	assert.Same(t, GetTranslator(), GetTranslator())
}
