package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/render"
	"github.com/guttosm/quote-service/internal/service"
)

// PortalHandler serves the customer-facing quote wizard.
type PortalHandler struct {
	quotes   service.QuoteService
	configs  service.PricingConfigService
	notifier service.QuoteNotifier
}

// NewPortalHandler creates a new PortalHandler. A nil notifier skips quote emails.
func NewPortalHandler(quotes service.QuoteService, configs service.PricingConfigService, notifier service.QuoteNotifier) *PortalHandler {
	return &PortalHandler{quotes: quotes, configs: configs, notifier: notifier}
}

// portalConfig resolves the tenant and answers 404 when its portal is off.
func (h *PortalHandler) portalConfig(c *gin.Context, builder *ResponseBuilder) (*model.PricingConfig, bool) {
	cfg, err := h.configs.GetActive(c.Request.Context(), c.Param("tenant"))
	if err != nil {
		builder.Fail(err)
		return nil, false
	}
	if !cfg.Portal.Enabled {
		builder.Error(http.StatusNotFound, i18n.ErrKeyPortalDisabled, nil)
		return nil, false
	}
	return cfg, true
}

// GetConfig handles GET /api/v1/portal/:tenant/config requests.
//
// @Summary      Portal catalog
// @Description  Returns the garments, placements, color caps, extras and quantity limits the quote wizard offers.
// @Tags         Portal
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PortalConfigResponse} "Wizard catalog"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant or portal disabled"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/v1/portal/{tenant}/config [get]
func (h *PortalHandler) GetConfig(c *gin.Context) {
	builder := NewResponseBuilder(c)
	cfg, ok := h.portalConfig(c, builder)
	if !ok {
		return
	}
	builder.SuccessOK(dto.NewPortalConfigResponse(cfg))
}

// CreateQuote handles POST /api/v1/portal/:tenant/quotes requests.
//
// @Summary      Request a quote from the customer portal
// @Description  Prices the wizard's order and emails the quote to the customer and the shop. Email failures do not fail the quote; the response reports which emails were accepted.
// @Tags         Portal
// @Accept       json
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PortalQuoteRequest true "Wizard order"
// @Success      201 {object} dto.SuccessResponse{data=dto.PortalQuoteResponse} "Priced quote"
// @Header       201 {string} X-Idempotency-Replayed "true when the response is a stored replay"
// @Failure      400 {object} dto.ErrorResponse "Invalid order"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant or portal disabled"
// @Failure      409 {object} dto.ErrorResponse "Same idempotency key still in flight"
// @Failure      422 {object} dto.ErrorResponse "Tenant pricing config cannot price the order"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/v1/portal/{tenant}/quotes [post]
func (h *PortalHandler) CreateQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.PortalQuoteRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}

	cfg, ok := h.portalConfig(c, builder)
	if !ok {
		return
	}
	if err := req.CheckPortalLimits(cfg.Portal); err != nil {
		builder.Fail(err)
		return
	}

	order := req.ToOrder(cfg.Extras)
	b, err := h.quotes.Calculate(service.ChannelPortal, order, cfg)
	if err != nil {
		builder.Fail(err)
		return
	}

	resp := dto.PortalQuoteResponse{
		Quote: dto.NewQuoteResponse(service.NewQuoteID(), cfg, b, service.ColorsClamped(order, cfg)),
	}
	if h.notifier != nil && !b.GuardrailTriggered {
		q := render.Quote{
			ID:        resp.Quote.QuoteID,
			ShopName:  cfg.ShopName,
			Breakdown: b,
			Customer:  req.Customer.ToModel(),
			Notes:     req.TrimmedNotes(),
			CreatedAt: resp.Quote.CreatedAt,
		}
		// Emails finish even if the customer closes the wizard.
		sent := h.notifier.NotifyQuote(context.WithoutCancel(c.Request.Context()), q, cfg.Portal.NotifyEmail)
		resp.CustomerEmailSent = sent.CustomerSent
		resp.ShopEmailSent = sent.ShopSent
	}

	middleware.AuditQuote(loggingServiceFrom(c), c, model.ActionPortalQuote, b)
	builder.SuccessCreated(resp)
}
