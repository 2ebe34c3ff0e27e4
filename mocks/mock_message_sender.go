package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enrolpay/internal/port"
)

// MockMessageSender is a mock implementation of port.MessageSender.
type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockMessageSender) Send(ctx context.Context, msg port.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
