// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockLoggingService struct {
	mock.Mock
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) Activity(ctx context.Context, q model.LogQuery) (*model.LogPage, error) {
	args := m.Called(ctx, q)
	page, _ := args.Get(0).(*model.LogPage)
	return page, args.Error(1)
}

func (m *MockLoggingService) AuditQuote(ctx context.Context, action, requestID string, b *model.Breakdown) {
	m.Called(ctx, action, requestID, b)
}

// NewMockLoggingService creates a mock that asserts its expectations when the test ends.
func NewMockLoggingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
