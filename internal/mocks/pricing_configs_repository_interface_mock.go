// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPricingConfigsRepositoryInterface struct {
	mock.Mock
}

func (m *MockPricingConfigsRepositoryInterface) GetActive(ctx context.Context, tenant string) (*repository.PricingConfigDocument, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigDocument), args.Error(1)
}

func (m *MockPricingConfigsRepositoryInterface) Create(ctx context.Context, tenant string, cfg model.PricingConfig, createdBy string) (*repository.PricingConfigDocument, error) {
	args := m.Called(ctx, tenant, cfg, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigDocument), args.Error(1)
}

func (m *MockPricingConfigsRepositoryInterface) List(ctx context.Context, tenant string, limit int) ([]repository.PricingConfigDocument, error) {
	args := m.Called(ctx, tenant, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PricingConfigDocument), args.Error(1)
}
