package repository

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// PricingConfigsRepositoryInterface defines versioned pricing config storage.
type PricingConfigsRepositoryInterface interface {
	GetActive(ctx context.Context, tenant string) (*PricingConfigDocument, error)
	Create(ctx context.Context, tenant string, cfg model.PricingConfig, createdBy string) (*PricingConfigDocument, error)
	List(ctx context.Context, tenant string, limit int) ([]PricingConfigDocument, error)
}

// LogStore persists and queries log entries.
type LogStore interface {
	Insert(ctx context.Context, entries ...*model.LogEntry) error
	Find(ctx context.Context, q model.LogQuery) ([]model.LogEntry, error)
	Count(ctx context.Context, q model.LogQuery) (int64, error)
}

var (
	_ PricingConfigsRepositoryInterface = (*PricingConfigsRepository)(nil)
	_ PricingConfigsRepositoryInterface = (*PricingConfigsRepositoryWithCircuitBreaker)(nil)
	_ LogStore                          = (*LogsRepository)(nil)
	_ LogStore                          = (*LogsRepositoryWithCircuitBreaker)(nil)
)
