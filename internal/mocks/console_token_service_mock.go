// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/quote-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockConsoleTokenService struct {
	mock.Mock
}

func (m *MockConsoleTokenService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockConsoleTokenService) Issue(tenant, operator string) (*service.ConsoleToken, error) {
	args := m.Called(tenant, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsoleToken), args.Error(1)
}

func (m *MockConsoleTokenService) Validate(token, tenant string) (*service.ConsoleClaims, error) {
	args := m.Called(token, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsoleClaims), args.Error(1)
}
