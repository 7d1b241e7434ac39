package repository

import (
	"context"
	"errors"

	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/model"
)

// PricingConfigsRepositoryWithCircuitBreaker guards pricing config storage.
// While the breaker is open, reads look like "nothing published" so quotes
// fall back to tenant files; writes fail with circuitbreaker.ErrCircuitOpen.
type PricingConfigsRepositoryWithCircuitBreaker struct {
	repo PricingConfigsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewPricingConfigsRepositoryWithCircuitBreaker wraps repo with cb.
func NewPricingConfigsRepositoryWithCircuitBreaker(repo PricingConfigsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PricingConfigsRepositoryWithCircuitBreaker {
	return &PricingConfigsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *PricingConfigsRepositoryWithCircuitBreaker) GetActive(ctx context.Context, tenant string) (*PricingConfigDocument, error) {
	doc, err := circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*PricingConfigDocument, error) {
		return r.repo.GetActive(ctx, tenant)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return doc, err
}

func (r *PricingConfigsRepositoryWithCircuitBreaker) Create(ctx context.Context, tenant string, cfg model.PricingConfig, createdBy string) (*PricingConfigDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*PricingConfigDocument, error) {
		return r.repo.Create(ctx, tenant, cfg, createdBy)
	})
}

func (r *PricingConfigsRepositoryWithCircuitBreaker) List(ctx context.Context, tenant string, limit int) ([]PricingConfigDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]PricingConfigDocument, error) {
		return r.repo.List(ctx, tenant, limit)
	})
}

// LogsRepositoryWithCircuitBreaker guards log storage. Inserts are shed while
// the breaker is open; queries fail with circuitbreaker.ErrCircuitOpen.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogStore
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogStore, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Insert(ctx context.Context, entries ...*model.LogEntry) error {
	err := r.cb.Execute(ctx, func() error {
		return r.repo.Insert(ctx, entries...)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Find(ctx context.Context, q model.LogQuery) ([]model.LogEntry, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]model.LogEntry, error) {
		return r.repo.Find(ctx, q)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, q model.LogQuery) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, q)
	})
}
