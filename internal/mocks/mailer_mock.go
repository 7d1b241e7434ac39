// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/quote-service/internal/email"
	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
