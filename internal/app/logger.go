package app

import (
	"github.com/guttosm/quote-service/config"
	"github.com/guttosm/quote-service/internal/logger"
)

const serviceName = "quote-service"

// InitializeLogger configures the global logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(logger.Options{
		Level:   cfg.Level,
		Pretty:  cfg.Pretty,
		Service: serviceName,
	})
}
