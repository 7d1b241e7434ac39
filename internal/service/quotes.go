// Package service holds the quote engine and the services around it: pricing
// config resolution, audit logging, notifications and console tokens.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/metrics"
)

// Origination channels.
const (
	ChannelConsole = "console"
	ChannelPortal  = "portal"
)

// Calculation results as reported to metrics.
const (
	resultSuccess         = "success"
	resultGuardrail       = "guardrail"
	resultValidationError = "validation_error"
	resultConfigError     = "config_error"
	resultError           = "error"
)

// QuoteService runs the engine for a channel and records the outcome.
type QuoteService interface {
	Calculate(channel string, order model.OrderRequest, cfg *model.PricingConfig) (*model.Breakdown, error)
}

// QuoteServiceImpl implements QuoteService.
type QuoteServiceImpl struct {
	calculator QuoteCalculator
}

// NewQuoteService creates a quote service around an engine.
func NewQuoteService(calculator QuoteCalculator) *QuoteServiceImpl {
	if calculator == nil {
		calculator = NewQuoteCalculator()
	}
	return &QuoteServiceImpl{calculator: calculator}
}

// Calculate computes a breakdown. The engine result is returned unchanged.
func (s *QuoteServiceImpl) Calculate(channel string, order model.OrderRequest, cfg *model.PricingConfig) (*model.Breakdown, error) {
	start := time.Now()
	b, err := s.calculator.Compute(order, cfg)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordQuoteCalculation(channel, classify(err), duration, 0)
		return nil, err
	}
	if b.GuardrailTriggered {
		metrics.RecordQuoteCalculation(channel, resultGuardrail, duration, 0)
		metrics.RecordGuardrail(b.Tenant)
		return b, nil
	}

	total, _ := b.GrandTotal.Float64()
	metrics.RecordQuoteCalculation(channel, resultSuccess, duration, total)
	return b, nil
}

func classify(err error) string {
	var vErr *model.ValidationError
	var cErr *model.ConfigError
	switch {
	case errors.As(err, &vErr):
		return resultValidationError
	case errors.As(err, &cErr):
		return resultConfigError
	default:
		return resultError
	}
}

// NewQuoteID returns a short, human-friendly quote reference such as "Q-1A2B3C4D".
func NewQuoteID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "Q-" + strings.ToUpper(id[:8])
}

// ColorsClamped reports whether any placement asks for more colors than the tenant allows
// there. The engine clamps silently; callers surface this to the user.
func ColorsClamped(order model.OrderRequest, cfg *model.PricingConfig) bool {
	if cfg == nil {
		return false
	}
	for _, p := range order.Placements {
		if p.Colors > cfg.MaxColorsFor(model.NormalizePlacementName(p.Name)) {
			return true
		}
	}
	return false
}
