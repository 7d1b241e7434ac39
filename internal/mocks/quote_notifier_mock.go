// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/render"
	"github.com/guttosm/quote-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockQuoteNotifier struct {
	mock.Mock
}

func (m *MockQuoteNotifier) NotifyQuote(ctx context.Context, q render.Quote, shopEmail string) service.NotificationResult {
	args := m.Called(ctx, q, shopEmail)
	return args.Get(0).(service.NotificationResult)
}

func (m *MockQuoteNotifier) EmailQuote(ctx context.Context, q render.Quote, shopEmail string) error {
	args := m.Called(ctx, q, shopEmail)
	return args.Error(0)
}
