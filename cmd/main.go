// Package main is the entry point for the quote-service application.
//
// @title           Quote Service API
// @version         1.0.0
// @description     Screen printing quote engine for print shops.
//
//	Prices console and customer portal orders from per-tenant pricing configs and renders quotes as PDF.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/quote-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Admin API key. Required on /tenants routes when authentication is enabled.
//
// @tag.name        Quotes
// @tag.description Shop console quotes
//
// @tag.name        Portal
// @tag.description Customer portal catalog and quote requests
//
// @tag.name        Pricing Config
// @tag.description Tenant pricing config administration
//
// @tag.name        Console
// @tag.description Console token issuance
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/guttosm/quote-service/docs" // swagger docs

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(application.Close)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
