package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	defaultPublisher    = "api"
)

// PricingConfigHandler provides HTTP handlers for tenant pricing config administration.
type PricingConfigHandler struct {
	service service.PricingConfigService
}

// NewPricingConfigHandler creates a new PricingConfigHandler instance.
func NewPricingConfigHandler(svc service.PricingConfigService) *PricingConfigHandler {
	return &PricingConfigHandler{service: svc}
}

// GetActive handles GET /api/v1/tenants/:tenant/pricing-config requests.
//
// @Summary      Get active pricing config
// @Description  Returns the tenant's active pricing config, from the database when a version was published, otherwise from the tenant file.
// @Tags         Pricing Config
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Success      200 {object} dto.SuccessResponse{data=model.PricingConfig} "Active config"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      422 {object} dto.ErrorResponse "Stored config is invalid"
// @Security     ApiKeyAuth
// @Router       /api/v1/tenants/{tenant}/pricing-config [get]
func (h *PricingConfigHandler) GetActive(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cfg, err := h.service.GetActive(c.Request.Context(), c.Param("tenant"))
	if err != nil {
		builder.Fail(err)
		return
	}

	builder.SuccessOK(cfg)
}

// Publish handles PUT /api/v1/tenants/:tenant/pricing-config requests.
//
// @Summary      Publish a pricing config
// @Description  Validates the config and stores it as the tenant's new active version. The cached snapshot is replaced immediately.
// @Tags         Pricing Config
// @Accept       json
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        request body dto.PublishPricingConfigRequest true "Pricing config"
// @Success      201 {object} dto.SuccessResponse{data=dto.PricingConfigVersionResponse} "Stored version"
// @Failure      400 {object} dto.ErrorResponse "Malformed body"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      409 {object} dto.ErrorResponse "Concurrent publish won"
// @Failure      422 {object} dto.ErrorResponse "Config is inconsistent"
// @Failure      503 {object} dto.ErrorResponse "Database disabled"
// @Security     ApiKeyAuth
// @Router       /api/v1/tenants/{tenant}/pricing-config [put]
func (h *PricingConfigHandler) Publish(c *gin.Context) {
	builder := NewResponseBuilder(c)
	ls := loggingServiceFrom(c)

	req, err := BuildRequest[dto.PublishPricingConfigRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = defaultPublisher
	}

	doc, err := h.service.Publish(c.Request.Context(), c.Param("tenant"), req.Config, createdBy)
	if err != nil {
		middleware.AuditLogError(ls, c, model.ActionPublishPricingConfig, "Pricing config rejected", err, map[string]interface{}{
			"created_by": createdBy,
		})
		builder.Fail(err)
		return
	}

	middleware.AuditLog(ls, c, model.ActionPublishPricingConfig, "Pricing config published", map[string]interface{}{
		"version":    doc.Version,
		"created_by": createdBy,
	})
	builder.SuccessCreated(versionResponse(doc))
}

// History handles GET /api/v1/tenants/:tenant/pricing-config/history requests.
//
// @Summary      List pricing config versions
// @Description  Lists stored versions, newest first.
// @Tags         Pricing Config
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        limit query int false "Maximum versions to return (default 20, max 100)"
// @Success      200 {object} dto.SuccessResponse{data=[]dto.PricingConfigVersionResponse} "Versions"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "Database disabled"
// @Security     ApiKeyAuth
// @Router       /api/v1/tenants/{tenant}/pricing-config/history [get]
func (h *PricingConfigHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	docs, err := h.service.History(c.Request.Context(), c.Param("tenant"), limit)
	if err != nil {
		builder.Fail(err)
		return
	}

	versions := make([]dto.PricingConfigVersionResponse, len(docs))
	for i := range docs {
		versions[i] = versionResponse(&docs[i])
	}
	builder.SuccessOK(versions)
}

// Reload handles POST /api/v1/tenants/:tenant/pricing-config/reload requests.
//
// @Summary      Reload a tenant's pricing config
// @Description  Drops the cached snapshot so the next quote resolves the config again. Use after editing a tenant file.
// @Tags         Pricing Config
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PricingConfigVersionResponse} "Reloaded config"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      422 {object} dto.ErrorResponse "Config is invalid"
// @Security     ApiKeyAuth
// @Router       /api/v1/tenants/{tenant}/pricing-config/reload [post]
func (h *PricingConfigHandler) Reload(c *gin.Context) {
	builder := NewResponseBuilder(c)
	tenant := c.Param("tenant")

	h.service.Reload(tenant)
	cfg, err := h.service.GetActive(c.Request.Context(), tenant)
	if err != nil {
		middleware.AuditLogError(loggingServiceFrom(c), c, model.ActionReloadPricingConfig, "Pricing config reload failed", err, nil)
		builder.Fail(err)
		return
	}

	middleware.AuditLog(loggingServiceFrom(c), c, model.ActionReloadPricingConfig, "Pricing config reloaded", map[string]interface{}{
		"version": cfg.Version,
	})
	builder.SuccessOK(dto.PricingConfigVersionResponse{
		Tenant:  cfg.Tenant,
		Version: cfg.Version,
		Active:  true,
		Config:  *cfg,
	})
}

func versionResponse(doc *repository.PricingConfigDocument) dto.PricingConfigVersionResponse {
	return dto.PricingConfigVersionResponse{
		Tenant:    doc.Tenant,
		Version:   doc.Version,
		Active:    doc.Active,
		CreatedAt: doc.CreatedAt,
		CreatedBy: doc.CreatedBy,
		Config:    doc.Config,
	}
}
