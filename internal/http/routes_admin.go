package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/middleware"
)

// AdminRoutes registers tenant administration routes.
type AdminRoutes struct {
	configs  *PricingConfigHandler
	tokens   *ConsoleTokenHandler
	activity *ActivityHandler
}

// NewAdminRoutes creates a new AdminRoutes instance. tokens may be nil.
func NewAdminRoutes(configs *PricingConfigHandler, tokens *ConsoleTokenHandler, activity *ActivityHandler) *AdminRoutes {
	return &AdminRoutes{configs: configs, tokens: tokens, activity: activity}
}

// RegisterRoutes registers /tenants/:tenant behind API key auth when auth is enabled.
func (r *AdminRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	admin := rg.Group("/tenants/:tenant")
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		admin.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	pricing := admin.Group("/pricing-config")
	{
		pricing.GET("", r.configs.GetActive)
		pricing.PUT("", r.configs.Publish)
		pricing.GET("/history", r.configs.History)
		pricing.POST("/reload", r.configs.Reload)
	}

	admin.GET("/activity", r.activity.List)

	if r.tokens != nil {
		admin.POST("/console-tokens", r.tokens.Issue)
	}
}
