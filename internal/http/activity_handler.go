package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/service"
)

// ActivityHandler lists what happened for a tenant: quotes priced and admin
// actions, as persisted by the logging service.
type ActivityHandler struct {
	logs service.LoggingService
}

// NewActivityHandler creates a new ActivityHandler. logs may be nil when
// storage is disabled, in which case the route answers 503.
func NewActivityHandler(logs service.LoggingService) *ActivityHandler {
	return &ActivityHandler{logs: logs}
}

// List handles GET /api/v1/tenants/:tenant/activity requests.
//
// @Summary      List tenant activity
// @Description  Pages through the tenant's audit entries, newest first. Filter by action, level and an RFC 3339 time window.
// @Tags         Activity
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        action query string false "Action type" Enums(console_quote, portal_quote, quote_pdf, pricing_config_published, pricing_config_reloaded, console_token_issued)
// @Param        level query string false "Level" Enums(debug, info, warn, error)
// @Param        since query string false "Earliest timestamp (RFC 3339)"
// @Param        until query string false "Latest timestamp (RFC 3339)"
// @Param        limit query int false "Page size (default 50, max 200)"
// @Param        offset query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.ActivityResponse} "Activity page"
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "Database disabled"
// @Security     ApiKeyAuth
// @Router       /api/v1/tenants/{tenant}/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.logs == nil {
		builder.Fail(service.ErrRepositoryNotConfigured)
		return
	}

	var q dto.ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(builder, err)
		return
	}

	page, err := h.logs.Activity(c.Request.Context(), q.ToLogQuery(c.Param("tenant")))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewActivityResponse(page))
}
