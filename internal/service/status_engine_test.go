package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"enrolpay/internal/domain"
	"enrolpay/internal/service"
	"enrolpay/mocks"
)

func activeAgency(name, timezone string) domain.Agency {
	return domain.Agency{
		ID:                   uuid.New(),
		Name:                 name,
		Slug:                 name,
		Timezone:             timezone,
		OverdueCutoffTime:    "17:00",
		DueSoonThresholdDays: 7,
		AdminEmail:           name + "@example.com",
		IsActive:             true,
	}
}

func candidate(agencyID uuid.UUID, number int, due time.Time) domain.InstallmentDetail {
	return domain.InstallmentDetail{
		Installment: domain.Installment{
			ID:                uuid.New(),
			AgencyID:          agencyID,
			Amount:            dec("2500"),
			StudentDueDate:    due,
			Status:            domain.InstallmentStatusPending,
			InstallmentNumber: number,
		},
		StudentFirstName: "Ana",
		StudentLastName:  "Silva",
	}
}

func newStatusEngine(agencies *mocks.MockAgencyRepo, installments *mocks.MockInstallmentRepo, audit *mocks.MockAuditRepo, jobs *mocks.MockJobRunRepo) *service.StatusEngine {
	jobs.On("Start", mock.Anything, mock.Anything).Return(nil)
	jobs.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return service.NewStatusEngine(agencies, installments, audit, service.NewJobRunner(jobs), 4)
}

func TestStatusEngine_CutoffRespectsAgencyTimezone(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	agency := activeAgency("brisbane-edu", "Australia/Brisbane")
	agencies.On("ListActive", mock.Anything).Return([]domain.Agency{agency}, nil)

	// 22:00 UTC on Jan 14 is 08:00 on Jan 15 in Brisbane: the local day has
	// rolled over but the 17:00 cutoff has not passed yet.
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 1, 14, 22, 0, 0, 0, time.UTC)
	}
	sameLocalDay := func(lt time.Time) bool {
		y, m, d := lt.Date()
		return y == 2025 && m == time.January && d == 15
	}
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.MatchedBy(sameLocalDay), false).
		Return([]domain.InstallmentDetail{}, nil).Once()

	results, err := engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 0, results[0].UpdatedCount)

	// Ten hours later it is 18:00 in Brisbane, past the cutoff.
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	}
	inst := candidate(agency.ID, 1, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.MatchedBy(sameLocalDay), true).
		Return([]domain.InstallmentDetail{inst}, nil).Once()
	installments.On("MarkOverdue", mock.Anything, agency.ID, inst.ID).Return(true, nil).Once()
	audit.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	results, err = engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, results[0].UpdatedCount)
	installments.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestStatusEngine_RerunIsIdempotent(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	agency := activeAgency("acme", "UTC")
	agencies.On("ListActive", mock.Anything).Return([]domain.Agency{agency}, nil)
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	}

	inst := candidate(agency.ID, 2, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.Anything, true).
		Return([]domain.InstallmentDetail{inst}, nil).Once()
	installments.On("MarkOverdue", mock.Anything, agency.ID, inst.ID).Return(true, nil).Once()
	audit.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	results, err := engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, results[0].UpdatedCount)

	// A second run sees no pending candidates: the transition query only
	// ever matches pending rows.
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.Anything, true).
		Return([]domain.InstallmentDetail{}, nil).Once()

	results, err = engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, results[0].UpdatedCount)
	audit.AssertNumberOfCalls(t, "Create", 1)
}

func TestStatusEngine_ConcurrentPaymentIsBenign(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	agency := activeAgency("acme", "UTC")
	agencies.On("ListActive", mock.Anything).Return([]domain.Agency{agency}, nil)
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	}

	// The row was pending when listed but got paid before the update; the
	// guarded update matches nothing and the run carries no error.
	inst := candidate(agency.ID, 1, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.Anything, true).
		Return([]domain.InstallmentDetail{inst}, nil)
	installments.On("MarkOverdue", mock.Anything, agency.ID, inst.ID).Return(false, nil)

	results, err := engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, results[0].UpdatedCount)
	assert.Empty(t, results[0].Error)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStatusEngine_BadAgencyConfigIsIsolated(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	broken := activeAgency("broken", "Mars/Olympus")
	healthy := activeAgency("healthy", "UTC")
	agencies.On("ListActive", mock.Anything).Return([]domain.Agency{broken, healthy}, nil)
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	}

	inst := candidate(healthy.ID, 1, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	installments.On("ListOverdueCandidates", mock.Anything, healthy.ID, mock.Anything, true).
		Return([]domain.InstallmentDetail{inst}, nil)
	installments.On("MarkOverdue", mock.Anything, healthy.ID, inst.ID).Return(true, nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	results, err := engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, 0, results[0].UpdatedCount)
	assert.Empty(t, results[1].Error)
	assert.Equal(t, 1, results[1].UpdatedCount)
	installments.AssertNotCalled(t, "ListOverdueCandidates", mock.Anything, broken.ID, mock.Anything, mock.Anything)
}

func TestStatusEngine_ListFailureIsPerAgency(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	agency := activeAgency("acme", "UTC")
	agencies.On("ListActive", mock.Anything).Return([]domain.Agency{agency}, nil)
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	}
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.Anything, true).
		Return(nil, fmt.Errorf("connection reset"))

	results, err := engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, results[0].Error, "connection reset")
	jobs.AssertCalled(t, "Complete", mock.Anything, mock.Anything, domain.JobStatusSuccess, 0, mock.Anything)
}

func TestStatusEngine_AgencyListFailureFailsRun(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	agencies.On("ListActive", mock.Anything).Return(nil, fmt.Errorf("db down"))

	results, err := engine.RunStatusUpdate(context.Background())
	assert.Error(t, err)
	assert.Nil(t, results)
	jobs.AssertCalled(t, "Complete", mock.Anything, mock.Anything, domain.JobStatusFailed, 0, mock.Anything)
}

func TestStatusEngine_AuditCarriesTransitionContext(t *testing.T) {
	agencies := new(mocks.MockAgencyRepo)
	installments := new(mocks.MockInstallmentRepo)
	audit := new(mocks.MockAuditRepo)
	jobs := new(mocks.MockJobRunRepo)
	engine := newStatusEngine(agencies, installments, audit, jobs)

	agency := activeAgency("acme", "UTC")
	agencies.On("ListActive", mock.Anything).Return([]domain.Agency{agency}, nil)
	engine.NowFunc = func() time.Time {
		return time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	}

	inst := candidate(agency.ID, 3, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	installments.On("ListOverdueCandidates", mock.Anything, agency.ID, mock.Anything, true).
		Return([]domain.InstallmentDetail{inst}, nil)
	installments.On("MarkOverdue", mock.Anything, agency.ID, inst.ID).Return(true, nil)

	var captured *domain.AuditEntry
	audit.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		captured = e
		return true
	})).Return(nil)

	_, err := engine.RunStatusUpdate(context.Background())
	assert.NoError(t, err)
	if assert.NotNil(t, captured) {
		assert.Equal(t, agency.ID, captured.AgencyID)
		assert.Equal(t, inst.ID, captured.EntityID)
		assert.Equal(t, "installment", captured.EntityType)
		assert.Equal(t, "status_overdue", captured.Action)
		assert.Contains(t, captured.Description, "Ana Silva")
		assert.Contains(t, string(captured.Metadata), "2025-03-08")
	}
}
