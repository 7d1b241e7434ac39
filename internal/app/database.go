// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"

	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                           *repository.MongoDB
	PricingConfigsRepo           repository.PricingConfigsRepositoryInterface
	LoggingService               service.LoggingService
	PricingConfigsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker           *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := max(int(cfg.LogsTTL.Hours()/24), 1)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Int("ttl_days", ttlDays).Msg("Failed to set logs TTL index, keeping the previous retention")
	}

	pricingCB := circuitbreaker.New(breakerConfig(cfg, "mongodb-pricing-configs"))
	logsCB := circuitbreaker.New(breakerConfig(cfg, "mongodb-logs"))

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	pricingRepo := repository.NewPricingConfigsRepositoryWithCircuitBreaker(repository.NewPricingConfigsRepository(db), pricingCB)

	return &DatabaseComponents{
		DB:                           db,
		PricingConfigsRepo:           pricingRepo,
		LoggingService:               service.NewLoggingService(logsRepo),
		PricingConfigsCircuitBreaker: pricingCB,
		LogsCircuitBreaker:           logsCB,
	}
}

func breakerConfig(cfg config.DatabaseConfig, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        isStorageFailure,
	}
}

// isStorageFailure leaves out errors that say nothing about MongoDB's health.
func isStorageFailure(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, repository.ErrVersionConflict)
}
