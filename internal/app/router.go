// Package app provides router configuration.
package app

import (
	"time"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/http"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
)

// pdfRouteSlack gives the renderer's own deadline room to fire before the route timeout.
const pdfRouteSlack = 5 * time.Second

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes the health handler and router configuration.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	var loggingService service.LoggingService
	healthHandler := http.NewHealthHandler()

	// Register dependencies for readiness checks
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.PingFunc(dbComponents.DB.HealthCheck))
		}
		if dbComponents.PricingConfigsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_pricing_configs", dbComponents.PricingConfigsCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}
	if services.MailCircuitBreaker != nil {
		healthHandler.RegisterCircuitBreaker("postmark", services.MailCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		RateLimits:     http.NewRateLimits(cfg.Server.RateLimit, cfg.Server.RateWindow),
		EnableAuth:     cfg.Auth.Enabled,
		APIKeys:        cfg.Auth.APIKeys,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		LoggingService: loggingService,
		RequestLog:     middleware.NewAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig()),
		QuoteService:   services.Quotes,
		PricingConfigs: services.PricingConfigs,
		Notifier:       services.Notifier,
		ConsoleTokens:  services.ConsoleTokens,
	}

	if cfg.Server.EnableIdempotency {
		idem := middleware.DefaultIdempotencyConfig(cfg.Server.IdempotencyCapacity, cfg.Server.IdempotencyTTL)
		routerCfg.Idempotency = &idem
	}

	// A nil *PDFRenderer must stay a nil interface.
	if services.PDF != nil {
		routerCfg.PDFRenderer = services.PDF
		routerCfg.PDFTimeout = cfg.PDF.Timeout + pdfRouteSlack
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
