// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/http"
)

// App is the wired service: its router plus the resources released on shutdown.
type App struct {
	Router  *gin.Engine
	limits  *http.RateLimits
	closers []func(context.Context) error
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// Logger first; everything below logs.
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)
	serviceComponents := InitializeServices(cfg, dbComponents)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	a := &App{
		Router: http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		limits: routerComponents.Config.RateLimits,
	}

	if a.limits != nil {
		a.closers = append(a.closers, func(context.Context) error {
			a.limits.Stop()
			return nil
		})
	}
	// Request logs flush before the database they are written to goes away.
	if rl := routerComponents.Config.RequestLog; rl != nil {
		a.closers = append(a.closers, rl.Close)
	}
	if dbComponents != nil && dbComponents.DB != nil {
		a.closers = append(a.closers, dbComponents.DB.Close)
	}
	return a
}

// Close releases the app's resources in dependency order.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range a.closers {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
