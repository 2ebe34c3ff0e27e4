package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

// ReportingService gives reporting collaborators read-only access to
// installments, notification records, job runs and the activity feed.
// Mutation of any of these through this surface is disallowed by contract.
type ReportingService interface {
	ListInstallments(ctx context.Context, agencyID uuid.UUID, status domain.InstallmentStatus, offset, limit int) ([]domain.Installment, int, error)
	ListDueSoon(ctx context.Context, agencyID uuid.UUID) ([]domain.InstallmentDetail, error)
	ListNotifications(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.NotificationRecord, int, error)
	ListJobRuns(ctx context.Context, offset, limit int) ([]domain.JobRun, int, error)
	ListAuditEntries(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
}

type reportingService struct {
	agencies      port.AgencyRepository
	installments  port.InstallmentRepository
	notifications port.NotificationRepository
	jobRuns       port.JobRunRepository
	audit         port.AuditRepository

	// NowFunc supplies the current instant; tests override it.
	NowFunc func() time.Time
}

// NewReportingService creates a new ReportingService.
func NewReportingService(agencies port.AgencyRepository, installments port.InstallmentRepository, notifications port.NotificationRepository, jobRuns port.JobRunRepository, audit port.AuditRepository) ReportingService {
	return &reportingService{
		agencies:      agencies,
		installments:  installments,
		notifications: notifications,
		jobRuns:       jobRuns,
		audit:         audit,
		NowFunc:       time.Now,
	}
}

func (s *reportingService) ListInstallments(ctx context.Context, agencyID uuid.UUID, status domain.InstallmentStatus, offset, limit int) ([]domain.Installment, int, error) {
	return s.installments.ListByAgency(ctx, agencyID, status, offset, limit)
}

// ListDueSoon evaluates the due-soon window in the agency's local time using
// its configured threshold.
func (s *reportingService) ListDueSoon(ctx context.Context, agencyID uuid.UUID) ([]domain.InstallmentDetail, error) {
	agency, err := s.agencies.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	if err := agency.ValidateConfig(); err != nil {
		return nil, err
	}
	loc, _ := agency.Location()
	localToday := LocalDay(s.NowFunc().In(loc))
	from, to := DueSoonWindow(localToday, agency.DueSoonThresholdDays)
	return s.installments.ListDueSoon(ctx, agencyID, from, to)
}

func (s *reportingService) ListNotifications(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.NotificationRecord, int, error) {
	return s.notifications.ListByAgency(ctx, agencyID, offset, limit)
}

func (s *reportingService) ListJobRuns(ctx context.Context, offset, limit int) ([]domain.JobRun, int, error) {
	return s.jobRuns.List(ctx, offset, limit)
}

func (s *reportingService) ListAuditEntries(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	return s.audit.ListByAgency(ctx, agencyID, offset, limit)
}
