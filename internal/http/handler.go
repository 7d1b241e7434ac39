package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/email"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/render"
	"github.com/guttosm/quote-service/internal/service"
)

const contextKeyLoggingService = "logging_service"

// PDFRenderer prints a quote to PDF.
type PDFRenderer interface {
	Render(ctx context.Context, q render.Quote) ([]byte, error)
}

// QuoteHandler provides HTTP handlers for the shop console quote routes.
type QuoteHandler struct {
	quotes   service.QuoteService
	configs  service.PricingConfigService
	pdf      PDFRenderer
	notifier service.QuoteNotifier
}

// NewQuoteHandler creates a new QuoteHandler. pdf and notifier may be nil, in
// which case the PDF and email routes answer 503.
func NewQuoteHandler(quotes service.QuoteService, configs service.PricingConfigService, pdf PDFRenderer, notifier service.QuoteNotifier) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, configs: configs, pdf: pdf, notifier: notifier}
}

type pricedQuote struct {
	id      string
	cfg     *model.PricingConfig
	order   model.OrderRequest
	result  *model.Breakdown
	clamped bool
}

func (q pricedQuote) response() dto.QuoteResponse {
	return dto.NewQuoteResponse(q.id, q.cfg, q.result, q.clamped)
}

func (q pricedQuote) document(resp dto.QuoteResponse) render.Quote {
	return render.Quote{
		ID:        q.id,
		ShopName:  q.cfg.ShopName,
		Breakdown: q.result,
		CreatedAt: resp.CreatedAt,
	}
}

// price resolves the tenant's config and runs the engine for the console channel.
func (h *QuoteHandler) price(c *gin.Context, req *dto.ConsoleQuoteRequest) (*pricedQuote, error) {
	cfg, err := h.configs.GetActive(c.Request.Context(), c.Param("tenant"))
	if err != nil {
		return nil, err
	}
	return h.priceOrder(cfg, req.ToOrder())
}

func (h *QuoteHandler) priceOrder(cfg *model.PricingConfig, order model.OrderRequest) (*pricedQuote, error) {
	b, err := h.quotes.Calculate(service.ChannelConsole, order, cfg)
	if err != nil {
		return nil, err
	}
	return &pricedQuote{
		id:      service.NewQuoteID(),
		cfg:     cfg,
		order:   order,
		result:  b,
		clamped: service.ColorsClamped(order, cfg),
	}, nil
}

// CreateQuote handles POST /api/v1/quotes/:tenant requests.
//
// @Summary      Price an order from the shop console
// @Description  Prices a console order against the tenant's active pricing config and returns the itemized breakdown. Orders under the shop minimum return an advisory with no line items.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        Authorization header string false "Bearer console token (required when console auth is enabled)"
// @Param        request body dto.ConsoleQuoteRequest true "Order"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteResponse} "Priced quote"
// @Failure      400 {object} dto.ErrorResponse "Invalid order"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid console token"
// @Failure      403 {object} dto.ErrorResponse "Token issued for another tenant"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      422 {object} dto.ErrorResponse "Tenant pricing config cannot price the order"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/v1/quotes/{tenant} [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ConsoleQuoteRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}

	q, err := h.price(c, req)
	if err != nil {
		builder.Fail(err)
		return
	}

	middleware.AuditQuote(loggingServiceFrom(c), c, model.ActionConsoleQuote, q.result)
	builder.SuccessOK(q.response())
}

// CreateQuotePDF handles POST /api/v1/quotes/:tenant/pdf requests.
//
// @Summary      Price an order and return it as a PDF
// @Description  Same body and pricing as the console quote route. The PDF is rendered from the same breakdown.
// @Tags         Quotes
// @Accept       json
// @Produce      application/pdf
// @Param        tenant path string true "Tenant id"
// @Param        request body dto.ConsoleQuoteRequest true "Order"
// @Success      200 {file} file "Quote PDF"
// @Failure      400 {object} dto.ErrorResponse "Invalid order"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid console token"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      503 {object} dto.ErrorResponse "PDF rendering unavailable"
// @Security     BearerAuth
// @Router       /api/v1/quotes/{tenant}/pdf [post]
func (h *QuoteHandler) CreateQuotePDF(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.pdf == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyPDFUnavailable, nil)
		return
	}

	req, err := BuildRequest[dto.ConsoleQuoteRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}

	q, err := h.price(c, req)
	if err != nil {
		builder.Fail(err)
		return
	}

	doc := q.document(q.response())
	pdf, err := h.pdf.Render(c.Request.Context(), doc)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
			return
		}
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyPDFUnavailable, err)
		return
	}

	middleware.AuditQuote(loggingServiceFrom(c), c, model.ActionQuotePDF, q.result)
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="quote-%s.pdf"`, q.id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// EmailQuote handles POST /api/v1/quotes/:tenant/email requests.
//
// @Summary      Price an order and email it to the customer
// @Description  Prices the order exactly like the console quote route and mails the rendering to the customer, with the shop's notification address on Bcc. Orders under the shop minimum return the advisory and are not mailed.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        Authorization header string false "Bearer console token (required when console auth is enabled)"
// @Param        request body dto.EmailQuoteRequest true "Order and customer"
// @Success      200 {object} dto.SuccessResponse{data=dto.EmailQuoteResponse} "Quote mailed"
// @Failure      400 {object} dto.ErrorResponse "Invalid order or customer"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid console token"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      422 {object} dto.ErrorResponse "Tenant pricing config cannot price the order"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      502 {object} dto.ErrorResponse "Mail provider rejected the message"
// @Failure      503 {object} dto.ErrorResponse "Email delivery not configured or unavailable"
// @Failure      504 {object} dto.ErrorResponse "Mail provider timed out"
// @Security     BearerAuth
// @Router       /api/v1/quotes/{tenant}/email [post]
func (h *QuoteHandler) EmailQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.notifier == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyEmailUnavailable, nil)
		return
	}

	req, err := BuildRequest[dto.EmailQuoteRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}

	q, err := h.price(c, &req.Order)
	if err != nil {
		builder.Fail(err)
		return
	}

	resp := dto.EmailQuoteResponse{Quote: q.response()}
	if !q.result.GuardrailTriggered {
		doc := q.document(resp.Quote)
		doc.Customer = req.Customer.ToModel()
		doc.Notes = req.TrimmedNotes()
		if err := h.notifier.EmailQuote(c.Request.Context(), doc, q.cfg.Portal.NotifyEmail); err != nil {
			emailFailed(builder, err)
			return
		}
		resp.EmailSent = true
	}

	middleware.AuditQuote(loggingServiceFrom(c), c, model.ActionQuoteEmail, q.result)
	builder.SuccessOK(resp)
}

func emailFailed(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, email.ErrNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyEmailUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		builder.Error(http.StatusBadGateway, i18n.ErrKeyEmailFailed, err)
	}
}

// AskQuote handles POST /api/v1/quotes/:tenant/ask requests.
//
// @Summary      Price a free-text order
// @Description  Reads a quantity and per-placement colors out of text such as "72 shirts, 2 colors front and 1 color back". When both are present the order is priced like a console quote, print only unless a garment is sent; otherwise the response lists what is missing.
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        tenant path string true "Tenant id"
// @Param        Authorization header string false "Bearer console token (required when console auth is enabled)"
// @Param        request body dto.AskQuoteRequest true "Free-text request"
// @Success      200 {object} dto.SuccessResponse{data=dto.AskQuoteResponse} "Parsed order and, when complete, its quote"
// @Failure      400 {object} dto.ErrorResponse "Empty message or invalid order"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid console token"
// @Failure      404 {object} dto.ErrorResponse "Unknown tenant"
// @Failure      422 {object} dto.ErrorResponse "Tenant pricing config cannot price the order"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Security     BearerAuth
// @Router       /api/v1/quotes/{tenant}/ask [post]
func (h *QuoteHandler) AskQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.AskQuoteRequest](c)
	if err != nil {
		bindFailed(builder, err)
		return
	}

	cfg, err := h.configs.GetActive(c.Request.Context(), c.Param("tenant"))
	if err != nil {
		builder.Fail(err)
		return
	}

	parsed := service.ParseOrderText(req.Message)
	resp := dto.NewAskQuoteResponse(parsed.Quantity, parsed.Placements, parsed.Missing)
	if !parsed.Complete() {
		builder.SuccessOK(resp)
		return
	}

	q, err := h.priceOrder(cfg, parsed.Order(req.GarmentSelection()))
	if err != nil {
		builder.Fail(err)
		return
	}
	quote := q.response()
	resp.Quote = &quote

	middleware.AuditQuote(loggingServiceFrom(c), c, model.ActionFreeformQuote, q.result)
	builder.SuccessOK(resp)
}

// bindFailed answers a request whose body could not be decoded or failed its
// binding rules. Field errors are listed in the response details.
func bindFailed(builder *ResponseBuilder, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fieldPath(fe.Namespace())] = describeRule(fe)
	}
	builder.abort(http.StatusBadRequest,
		i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequest, i18n.GetLocale(builder.c)),
		details, err)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_without":
		return "is required"
	case "min", "max", "oneof":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	case "email":
		return "must be a valid email address"
	case "placement":
		return "must be a lowercase placement name"
	default:
		return "failed " + fe.Tag()
	}
}

// loggingServiceFrom returns the audit logger the router placed on the context.
func loggingServiceFrom(c *gin.Context) service.LoggingService {
	if v, exists := c.Get(contextKeyLoggingService); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}
