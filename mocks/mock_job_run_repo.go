package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
)

// MockJobRunRepo is a mock implementation of port.JobRunRepository.
type MockJobRunRepo struct {
	mock.Mock
}

func (m *MockJobRunRepo) Start(ctx context.Context, run *domain.JobRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockJobRunRepo) Complete(ctx context.Context, id uuid.UUID, status domain.JobStatus, recordsUpdated int, errorMessage string) error {
	args := m.Called(ctx, id, status, recordsUpdated, errorMessage)
	return args.Error(0)
}

func (m *MockJobRunRepo) List(ctx context.Context, offset, limit int) ([]domain.JobRun, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobRun), args.Int(1), args.Error(2)
}
