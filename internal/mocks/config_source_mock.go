// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockConfigSource struct {
	mock.Mock
}

func (m *MockConfigSource) Load(tenant string) (*model.PricingConfig, error) {
	args := m.Called(tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PricingConfig), args.Error(1)
}

func (m *MockConfigSource) List() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
