package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a context that already went through RequestID.
func testContext(t *testing.T, method, body string, headers ...string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		c.Request.Header.Set(headers[i], headers[i+1])
	}
	middleware.RequestID()(c)
	return c, w
}

func TestBuildRequest(t *testing.T) {
	RegisterBindingValidators()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"operator": "front-desk"}`},
		{name: "malformed json", body: `{"operator": front-desk}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "binding rule fails", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, http.MethodPost, tt.body)

			req, err := BuildRequest[dto.IssueConsoleTokenRequest](c)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "front-desk", req.Operator)
		})
	}
}

func TestResponseBuilder_Success(t *testing.T) {
	quote := dto.QuoteResponse{QuoteID: "Q-1A2B3C4D", Tenant: "acme", Quantity: 100, GrandTotal: "253.00"}

	for _, tt := range []struct {
		name   string
		send   func(*ResponseBuilder)
		status int
	}{
		{"ok", func(b *ResponseBuilder) { b.SuccessOK(quote) }, http.StatusOK},
		{"created", func(b *ResponseBuilder) { b.SuccessCreated(quote) }, http.StatusCreated},
		{"accepted", func(b *ResponseBuilder) { b.Success(http.StatusAccepted, quote) }, http.StatusAccepted},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, http.MethodPost, "", middleware.RequestIDHeader, "req-7")

			tt.send(NewResponseBuilder(c))

			assert.Equal(t, tt.status, w.Code)
			var resp struct {
				Data      dto.QuoteResponse `json:"data"`
				RequestID string            `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, quote.QuoteID, resp.Data.QuoteID)
			assert.Equal(t, quote.GrandTotal, resp.Data.GrandTotal)
			assert.Equal(t, "req-7", resp.RequestID)
		})
	}
}

func TestResponseBuilder_ErrorIsTranslated(t *testing.T) {
	c, w := testContext(t, http.MethodGet, "", i18n.AcceptLanguageHeader, "pt-BR")

	NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
	assert.Equal(t, "Requisição inválida", resp.Message)
	assert.Empty(t, c.Errors, "nothing to log without a cause")
}

func TestResponseBuilder_Fail(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		message        string
		details        map[string]string
	}{
		{
			name:           "validation error keeps its field",
			err:            model.NewValidationError("quantity", "must be between 1 and 100000"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
			message:        "quantity: must be between 1 and 100000",
			details:        map[string]string{"quantity": "must be between 1 and 100000"},
		},
		{
			name:           "wrapped config error",
			err:            fmt.Errorf("resolve: %w", model.NewConfigError("acme", "no print tiers")),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInvalidConfig,
			message:        "pricing config acme: no print tiers",
		},
		{
			name:           "unknown tenant",
			err:            service.ErrTenantNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "database disabled",
			err:            service.ErrRepositoryNotConfigured,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeUnavailable,
		},
		{
			name:           "storage circuit open",
			err:            fmt.Errorf("list pricing configs: %w", circuitbreaker.ErrCircuitOpen),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeUnavailable,
		},
		{
			name:           "anything else",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
			message:        "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, http.MethodGet, "")

			NewResponseBuilder(c).Fail(tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
			assert.Equal(t, tt.details, resp.Details)
			assert.NotEmpty(t, resp.RequestID)
			require.Len(t, c.Errors, 1)
			assert.ErrorIs(t, c.Errors.Last().Err, tt.err)
		})
	}
}
