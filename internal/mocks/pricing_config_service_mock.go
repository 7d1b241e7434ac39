// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPricingConfigService struct {
	mock.Mock
}

func (m *MockPricingConfigService) GetActive(ctx context.Context, tenant string) (*model.PricingConfig, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PricingConfig), args.Error(1)
}

func (m *MockPricingConfigService) Publish(ctx context.Context, tenant string, cfg model.PricingConfig, createdBy string) (*repository.PricingConfigDocument, error) {
	args := m.Called(ctx, tenant, cfg, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigDocument), args.Error(1)
}

func (m *MockPricingConfigService) History(ctx context.Context, tenant string, limit int) ([]repository.PricingConfigDocument, error) {
	args := m.Called(ctx, tenant, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PricingConfigDocument), args.Error(1)
}

func (m *MockPricingConfigService) Reload(tenant string) {
	m.Called(tenant)
}

func (m *MockPricingConfigService) Warm(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}
