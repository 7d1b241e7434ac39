package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/middleware"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds what NewRouter wires. Nil services switch their routes
// off or make them answer 503.
type RouterConfig struct {
	// RateLimits is nil when rate limiting is off. The caller owns it and
	// stops it on shutdown.
	RateLimits *RateLimits
	EnableAuth bool
	APIKeys    map[string]bool
	// Idempotency is nil when replays are disabled.
	Idempotency *middleware.IdempotencyConfig
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
	PDFTimeout  time.Duration

	LoggingService service.LoggingService
	RequestLog     *middleware.AsyncLogger
	QuoteService   service.QuoteService
	PricingConfigs service.PricingConfigService
	Notifier       service.QuoteNotifier
	ConsoleTokens  service.ConsoleTokenService
	PDFRenderer    PDFRenderer
}

// DefaultRouterConfig wires nothing: no rate limits, no auth, no services.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{}
}

// RateLimits are the token buckets a router enforces: one per client IP on
// every route and one per tenant on the console routes. Each runs an idle
// bucket sweep until Stop.
type RateLimits struct {
	IP     *middleware.RateLimiter
	Tenant *middleware.RateLimiter
}

// NewRateLimits returns nil when requests is not positive.
func NewRateLimits(requests int, window time.Duration) *RateLimits {
	if requests <= 0 {
		return nil
	}
	return &RateLimits{
		IP:     middleware.NewRateLimiter(requests, window),
		Tenant: middleware.NewRateLimiter(requests, window),
	}
}

// Stop ends both sweeps. It is safe on a nil receiver and when called twice.
func (l *RateLimits) Stop() {
	if l == nil {
		return
	}
	l.IP.Stop()
	l.Tenant.Stop()
}

var registerValidatorsOnce sync.Once

// RegisterBindingValidators adds the quote binding tags to gin's validator.
func RegisterBindingValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := dto.RegisterValidators(v); err != nil {
				panic(err)
			}
		}
	})
}

// NewRouter builds the engine: health checks, metrics and docs at the root, the
// business API under /api/v1.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	RegisterBindingValidators()

	router := gin.New()
	router.Use(globalMiddleware(&cfg)...)

	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)

	api := router.Group("/api/v1")
	if cfg.Idempotency != nil {
		api.Use(middleware.Idempotency(*cfg.Idempotency))
	}
	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api, &cfg)
	}

	router.NoRoute(notFound)
	return router
}

// globalMiddleware runs on every route. Order matters: the request id comes
// first so that recovery and logging can report it.
func globalMiddleware(cfg *RouterConfig) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.RequestLog),
		middleware.ErrorHandler(),
		func(c *gin.Context) {
			c.Set(contextKeyLoggingService, cfg.LoggingService)
			c.Next()
		},
	}
	if cfg.RateLimits != nil {
		chain = append(chain, cfg.RateLimits.IP.ByIP())
	}
	return chain
}

func registerSwagger(router *gin.Engine, user, pass string) {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if user == "" || pass == "" {
		router.GET("/swagger/*any", docs)
		return
	}
	router.Group("/swagger", gin.BasicAuth(gin.Accounts{user: pass})).GET("/*any", docs)
}

func notFound(c *gin.Context) {
	msg := i18n.GetTranslator().Translate(i18n.ErrKeyNotFound, i18n.GetLocale(c))
	c.JSON(http.StatusNotFound, dto.NewError(dto.ErrCodeNotFound, msg).WithRequestID(middleware.GetRequestID(c)))
}

// routeGroups builds the business route groups. Without a pricing config
// service nothing can be priced, so no business routes are registered.
func routeGroups(cfg *RouterConfig) []RouteGroup {
	if cfg.PricingConfigs == nil {
		return nil
	}
	quotes := cfg.QuoteService
	if quotes == nil {
		quotes = service.NewQuoteService(nil)
	}

	var tokens *ConsoleTokenHandler
	if cfg.ConsoleTokens != nil {
		tokens = NewConsoleTokenHandler(cfg.ConsoleTokens, cfg.PricingConfigs)
	}

	return []RouteGroup{
		NewQuoteRoutes(NewQuoteHandler(quotes, cfg.PricingConfigs, cfg.PDFRenderer, cfg.Notifier)),
		NewPortalRoutes(NewPortalHandler(quotes, cfg.PricingConfigs, cfg.Notifier)),
		NewAdminRoutes(NewPricingConfigHandler(cfg.PricingConfigs), tokens, NewActivityHandler(cfg.LoggingService)),
	}
}
