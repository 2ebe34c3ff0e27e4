package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
	"enrolpay/internal/service"
	"enrolpay/mocks"
)

func TestJobRunner_SuccessfulRun(t *testing.T) {
	repo := new(mocks.MockJobRunRepo)
	runner := service.NewJobRunner(repo)

	repo.On("Start", mock.Anything, mock.MatchedBy(func(run *domain.JobRun) bool {
		return run.JobName == domain.JobNameStatusUpdate
	})).Return(nil)
	repo.On("Complete", mock.Anything, mock.Anything, domain.JobStatusSuccess, 5, "").Return(nil)

	err := runner.Run(context.Background(), domain.JobNameStatusUpdate, func(ctx context.Context) (int, string, error) {
		return 5, "", nil
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestJobRunner_UnitErrorsStaySuccessful(t *testing.T) {
	repo := new(mocks.MockJobRunRepo)
	runner := service.NewJobRunner(repo)

	repo.On("Start", mock.Anything, mock.Anything).Return(nil)
	repo.On("Complete", mock.Anything, mock.Anything, domain.JobStatusSuccess, 3, "acme: query timeout").Return(nil)

	err := runner.Run(context.Background(), domain.JobNameStatusUpdate, func(ctx context.Context) (int, string, error) {
		return 3, "acme: query timeout", nil
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestJobRunner_FatalErrorFailsRun(t *testing.T) {
	repo := new(mocks.MockJobRunRepo)
	runner := service.NewJobRunner(repo)

	repo.On("Start", mock.Anything, mock.Anything).Return(nil)
	repo.On("Complete", mock.Anything, mock.Anything, domain.JobStatusFailed, 0, "listing agencies: db down").Return(nil)

	err := runner.Run(context.Background(), domain.JobNameDispatch, func(ctx context.Context) (int, string, error) {
		return 0, "", fmt.Errorf("listing agencies: db down")
	})
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestJobRunner_StartFailureAbortsBody(t *testing.T) {
	repo := new(mocks.MockJobRunRepo)
	runner := service.NewJobRunner(repo)

	repo.On("Start", mock.Anything, mock.Anything).Return(fmt.Errorf("ledger unavailable"))

	ran := false
	err := runner.Run(context.Background(), domain.JobNameDispatch, func(ctx context.Context) (int, string, error) {
		ran = true
		return 0, "", nil
	})
	assert.Error(t, err)
	assert.False(t, ran)
	repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
