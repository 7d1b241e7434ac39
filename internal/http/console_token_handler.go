package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

// ConsoleTokenHandler issues tokens for shop consoles.
type ConsoleTokenHandler struct {
	tokens  service.ConsoleTokenService
	configs service.PricingConfigService
}

// NewConsoleTokenHandler creates a new ConsoleTokenHandler instance.
func NewConsoleTokenHandler(tokens service.ConsoleTokenService, configs service.PricingConfigService) *ConsoleTokenHandler {
	return &ConsoleTokenHandler{tokens: tokens, configs: configs}
}

// Issue handles POST /api/v1/tenants/:tenant/console-tokens requests.
//
// @Summary      Issue a console token
// @Description  Signs a token that lets one operator use the tenant's shop console. The tenant must resolve to a pricing config.
// @Tags         Console
// @Accept       json
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        request body dto.IssueConsoleTokenRequest true "Operator"
// @Success      201 {object} dto.SuccessResponse{data=dto.ConsoleTokenResponse} "Issued token"
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      503 {object} dto.ErrorResponse "Console auth not configured"
// @Security     ApiKeyAuth
// @Router       /api/v1/tenants/{tenant}/console-tokens [post]
func (h *ConsoleTokenHandler) Issue(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.tokens == nil || !h.tokens.Enabled() {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyConsoleAuthDisabled, nil)
		return
	}

	req, err := BuildRequest[dto.IssueConsoleTokenRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}

	tenant := c.Param("tenant")
	if _, err := h.configs.GetActive(c.Request.Context(), tenant); err != nil {
		builder.Fail(err)
		return
	}

	tok, err := h.tokens.Issue(tenant, req.Operator)
	if err != nil {
		if errors.Is(err, service.ErrConsoleAuthDisabled) {
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyConsoleAuthDisabled, err)
			return
		}
		builder.Fail(err)
		return
	}

	middleware.AuditLog(loggingServiceFrom(c), c, model.ActionIssueConsoleToken, "Console token issued", map[string]interface{}{
		"operator":   req.Operator,
		"expires_at": tok.ExpiresAt,
	})
	builder.SuccessCreated(dto.ConsoleTokenResponse{
		Token:     tok.Token,
		Tenant:    tok.Tenant,
		ExpiresAt: tok.ExpiresAt,
	})
}
