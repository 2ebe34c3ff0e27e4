package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
)

// MockPaymentPlanRepo is a mock implementation of port.PaymentPlanRepository.
type MockPaymentPlanRepo struct {
	mock.Mock
}

func (m *MockPaymentPlanRepo) GetByID(ctx context.Context, agencyID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, agencyID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}

func (m *MockPaymentPlanRepo) GetByIDAnyAgency(ctx context.Context, planID uuid.UUID) (*domain.PaymentPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPlan), args.Error(1)
}
