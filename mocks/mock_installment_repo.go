package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
)

// MockInstallmentRepo is a mock implementation of port.InstallmentRepository.
type MockInstallmentRepo struct {
	mock.Mock
}

func (m *MockInstallmentRepo) ListOverdueCandidates(ctx context.Context, agencyID uuid.UUID, localToday time.Time, cutoffPassed bool) ([]domain.InstallmentDetail, error) {
	args := m.Called(ctx, agencyID, localToday, cutoffPassed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentDetail), args.Error(1)
}

func (m *MockInstallmentRepo) MarkOverdue(ctx context.Context, agencyID, installmentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, agencyID, installmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInstallmentRepo) ListDueSoon(ctx context.Context, agencyID uuid.UUID, from, to time.Time) ([]domain.InstallmentDetail, error) {
	args := m.Called(ctx, agencyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentDetail), args.Error(1)
}

func (m *MockInstallmentRepo) ListOverdue(ctx context.Context, agencyID uuid.UUID) ([]domain.InstallmentDetail, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentDetail), args.Error(1)
}

func (m *MockInstallmentRepo) ListByPlan(ctx context.Context, agencyID, planID uuid.UUID) ([]domain.Installment, error) {
	args := m.Called(ctx, agencyID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, status domain.InstallmentStatus, offset, limit int) ([]domain.Installment, int, error) {
	args := m.Called(ctx, agencyID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Installment), args.Int(1), args.Error(2)
}
