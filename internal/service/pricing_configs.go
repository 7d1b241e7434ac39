package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service/cache"
	"github.com/guttosm/quote-service/internal/tenant"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrTenantNotFound is returned when no pricing config exists for a tenant.
	ErrTenantNotFound = errors.New("tenant not found")
)

// ConfigSource loads tenant configs from outside the database.
type ConfigSource interface {
	Load(tenant string) (*model.PricingConfig, error)
	List() ([]string, error)
}

// PricingConfigService resolves, publishes and caches tenant pricing configs.
type PricingConfigService interface {
	// GetActive returns the tenant's current snapshot. Callers must not mutate it.
	GetActive(ctx context.Context, tenant string) (*model.PricingConfig, error)
	Publish(ctx context.Context, tenant string, cfg model.PricingConfig, createdBy string) (*repository.PricingConfigDocument, error)
	History(ctx context.Context, tenant string, limit int) ([]repository.PricingConfigDocument, error)
	Reload(tenant string)
	Warm(ctx context.Context) int
}

// PricingConfigServiceImpl implements PricingConfigService.
type PricingConfigServiceImpl struct {
	repo   repository.PricingConfigsRepositoryInterface
	files  ConfigSource
	cache  cache.Store[*model.PricingConfig]
	flight singleflight.Group
}

// NewPricingConfigService creates a pricing config service. repo may be nil when
// the database is disabled; tenants then resolve from files only.
func NewPricingConfigService(repo repository.PricingConfigsRepositoryInterface, files ConfigSource, c cache.Store[*model.PricingConfig]) *PricingConfigServiceImpl {
	return &PricingConfigServiceImpl{repo: repo, files: files, cache: c}
}

func (s *PricingConfigServiceImpl) GetActive(ctx context.Context, tenantID string) (*model.PricingConfig, error) {
	if err := tenant.ValidateID(tenantID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTenantNotFound, err)
	}
	if s.cache != nil {
		if cfg, ok := s.cache.Get(tenantID); ok {
			return cfg, nil
		}
	}

	v, err, _ := s.flight.Do(tenantID, func() (interface{}, error) {
		cfg, err := s.resolve(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Set(tenantID, cfg)
		}
		return cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.PricingConfig), nil
}

// resolve prefers the active stored version and falls back to the tenant file.
func (s *PricingConfigServiceImpl) resolve(ctx context.Context, tenantID string) (*model.PricingConfig, error) {
	if s.repo != nil {
		doc, err := s.repo.GetActive(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("load stored pricing config: %w", err)
		}
		if doc != nil {
			cfg := doc.Config
			cfg.Tenant = tenantID
			cfg.Version = doc.Version
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
	}

	if s.files == nil {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
	}
	cfg, err := s.files.Load(tenantID)
	if errors.Is(err, tenant.ErrNotFound) || errors.Is(err, tenant.ErrInvalidID) {
		return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Publish validates cfg and stores it as the tenant's new active version.
func (s *PricingConfigServiceImpl) Publish(ctx context.Context, tenantID string, cfg model.PricingConfig, createdBy string) (*repository.PricingConfigDocument, error) {
	if err := tenant.ValidateID(tenantID); err != nil {
		return nil, model.NewValidationError("tenant", "%v", err)
	}
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	cfg.Tenant = tenantID
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.Create(ctx, tenantID, cfg, createdBy)
	if err != nil {
		return nil, fmt.Errorf("store pricing config: %w", err)
	}

	if s.cache != nil {
		snapshot := doc.Config
		s.cache.Set(tenantID, &snapshot)
	}
	log.Info().
		Str("tenant", tenantID).
		Int("version", doc.Version).
		Str("created_by", createdBy).
		Msg("Pricing config published")
	return doc, nil
}

func (s *PricingConfigServiceImpl) History(ctx context.Context, tenantID string, limit int) ([]repository.PricingConfigDocument, error) {
	if err := tenant.ValidateID(tenantID); err != nil {
		return nil, model.NewValidationError("tenant", "%v", err)
	}
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, tenantID, limit)
}

// Reload drops the cached snapshot; the next request resolves it again.
func (s *PricingConfigServiceImpl) Reload(tenantID string) {
	if s.cache != nil {
		s.cache.Invalidate(tenantID)
	}
}

// Warm resolves every tenant found on disk and logs the ones that fail to load.
// It returns the number of tenants cached.
func (s *PricingConfigServiceImpl) Warm(ctx context.Context) int {
	if s.files == nil {
		return 0
	}
	tenants, err := s.files.List()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list tenant configs")
		return 0
	}

	loaded := 0
	for _, t := range tenants {
		if _, err := s.GetActive(ctx, t); err != nil {
			log.Error().Err(err).Str("tenant", t).Msg("Tenant pricing config rejected")
			continue
		}
		loaded++
	}
	return loaded
}
