package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
)

// MockAgencyRepo is a mock implementation of port.AgencyRepository.
type MockAgencyRepo struct {
	mock.Mock
}

func (m *MockAgencyRepo) ListActive(ctx context.Context) ([]domain.Agency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Agency), args.Error(1)
}

func (m *MockAgencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}
