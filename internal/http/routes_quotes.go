package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/middleware"
)

// QuoteRoutes registers the shop console quote routes.
type QuoteRoutes struct {
	handler *QuoteHandler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(handler *QuoteHandler) *QuoteRoutes {
	return &QuoteRoutes{handler: handler}
}

// RegisterRoutes registers /quotes/:tenant. Console tokens are checked against the
// route's tenant and each tenant gets its own rate limit bucket.
func (r *QuoteRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	quotes := rg.Group("/quotes/:tenant")
	quotes.Use(middleware.ConsoleAuth(cfg.ConsoleTokens))

	if cfg.RateLimits != nil {
		quotes.Use(cfg.RateLimits.Tenant.ByTenant())
	}

	quotes.POST("", r.handler.CreateQuote)
	quotes.POST("/ask", r.handler.AskQuote)
	quotes.POST("/email", r.handler.EmailQuote)
	quotes.POST("/pdf", middleware.Deadline(cfg.PDFTimeout), r.handler.CreateQuotePDF)
}
