package http

import (
	"github.com/gin-gonic/gin"
)

// PortalRoutes registers the public customer portal routes.
type PortalRoutes struct {
	handler *PortalHandler
}

// NewPortalRoutes creates a new PortalRoutes instance.
func NewPortalRoutes(handler *PortalHandler) *PortalRoutes {
	return &PortalRoutes{handler: handler}
}

// RegisterRoutes registers /portal/:tenant. These routes need no credentials.
func (r *PortalRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	portal := rg.Group("/portal/:tenant")
	{
		portal.GET("/config", r.handler.GetConfig)
		portal.POST("/quotes", r.handler.CreateQuote)
	}
}
