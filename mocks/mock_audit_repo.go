package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
)

// MockAuditRepo is a mock implementation of port.AuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	args := m.Called(ctx, agencyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Int(1), args.Error(2)
}
