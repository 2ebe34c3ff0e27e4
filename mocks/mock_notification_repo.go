package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
)

// MockNotificationRepo is a mock implementation of port.NotificationRepository.
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Reserve(ctx context.Context, rec *domain.NotificationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID, providerName, providerMessageID string) error {
	args := m.Called(ctx, id, providerName, providerMessageID)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkFailed(ctx context.Context, id uuid.UUID, providerName string) error {
	args := m.Called(ctx, id, providerName)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.NotificationRecord, int, error) {
	args := m.Called(ctx, agencyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Int(1), args.Error(2)
}
