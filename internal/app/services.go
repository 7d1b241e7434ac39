// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/email"
	"github.com/guttosm/quote-service/internal/render"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/guttosm/quote-service/internal/service/cache"
	"github.com/guttosm/quote-service/internal/tenant"
	"github.com/rs/zerolog/log"
)

const (
	configCacheShards = 16
	warmTimeout       = 10 * time.Second
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Quotes         service.QuoteService
	PricingConfigs service.PricingConfigService
	Notifier       service.QuoteNotifier
	ConsoleTokens  service.ConsoleTokenService
	// PDF is nil when PDF rendering is disabled.
	PDF *render.PDFRenderer
	// MailCircuitBreaker is nil when email is disabled.
	MailCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeServices initializes business logic services. db may be nil, in which
// case pricing configs come from TENANTS_DIR only.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	components := &ServiceComponents{
		Quotes:        service.NewQuoteService(service.NewQuoteCalculator()),
		ConsoleTokens: service.NewConsoleTokenService(cfg.Auth.ConsoleSecret, cfg.Auth.ConsoleTokenTTL),
	}

	var repo repository.PricingConfigsRepositoryInterface
	if db != nil {
		repo = db.PricingConfigsRepo
	}
	configs := service.NewPricingConfigService(
		repo,
		tenant.NewLoader(cfg.Tenants.Dir),
		cache.NewSharded[*model.PricingConfig]("pricing_config", cfg.Cache.Size, cfg.Cache.TTL, configCacheShards),
	)
	components.PricingConfigs = configs

	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()
	warmed := configs.Warm(ctx)
	log.Info().Int("tenants", warmed).Str("dir", cfg.Tenants.Dir).Msg("Pricing configs loaded")

	var mailer email.Mailer
	if cfg.Email.Enabled() {
		components.MailCircuitBreaker = circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 5,
			SuccessThreshold: 1,
			Timeout:          time.Minute,
			Name:             "postmark",
			IsFailure:        email.CountsAsOutage,
		})
		mailer = email.NewPostmarkClient(email.Config{
			Token:   cfg.Email.PostmarkToken,
			From:    cfg.Email.From,
			ReplyTo: cfg.Email.ReplyTo,
			Stream:  cfg.Email.Stream,
			APIURL:  cfg.Email.APIURL,
			Timeout: cfg.Email.Timeout,
		}, components.MailCircuitBreaker)
	} else {
		log.Warn().Msg("POSTMARK_TOKEN or FROM_EMAIL not set - quote emails are disabled")
	}
	components.Notifier = service.NewQuoteNotifier(mailer, cfg.Email.ShopEmail)

	if cfg.PDF.Enabled {
		components.PDF = render.NewPDFRenderer(cfg.PDF.ChromePath, cfg.PDF.Timeout, cfg.PDF.MaxConcurrent)
	}

	if !components.ConsoleTokens.Enabled() {
		log.Warn().Msg("CONSOLE_JWT_SECRET not set - console quotes do not require a token")
	}

	return components
}
