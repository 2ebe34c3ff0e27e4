package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"enrolpay/internal/domain"
)

// AgencyRepository defines the tenant configuration provider contract.
// The engine never writes agencies.
type AgencyRepository interface {
	ListActive(ctx context.Context) ([]domain.Agency, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error)
}

// PaymentPlanRepository defines read access to payment plans.
type PaymentPlanRepository interface {
	GetByID(ctx context.Context, agencyID, planID uuid.UUID) (*domain.PaymentPlan, error)
	GetByIDAnyAgency(ctx context.Context, planID uuid.UUID) (*domain.PaymentPlan, error)
}

// InstallmentRepository defines the installment persistence contract.
// All query methods filter by agencyID to enforce tenant isolation.
type InstallmentRepository interface {
	// ListOverdueCandidates returns pending installments of active plans whose
	// student due date falls strictly before localToday, or on localToday when
	// cutoffPassed is true. Dates are compared as calendar days.
	ListOverdueCandidates(ctx context.Context, agencyID uuid.UUID, localToday time.Time, cutoffPassed bool) ([]domain.InstallmentDetail, error)

	// MarkOverdue transitions a single installment from pending to overdue.
	// The update is guarded by status='pending'; it returns false when the row
	// was concurrently paid or already transitioned, which is a benign no-op.
	MarkOverdue(ctx context.Context, agencyID, installmentID uuid.UUID) (bool, error)

	// ListDueSoon returns pending installments of active plans with a student
	// due date inside [from, to], both ends inclusive.
	ListDueSoon(ctx context.Context, agencyID uuid.UUID, from, to time.Time) ([]domain.InstallmentDetail, error)

	// ListOverdue returns installments of active plans currently in overdue.
	ListOverdue(ctx context.Context, agencyID uuid.UUID) ([]domain.InstallmentDetail, error)

	ListByPlan(ctx context.Context, agencyID, planID uuid.UUID) ([]domain.Installment, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID, status domain.InstallmentStatus, offset, limit int) ([]domain.Installment, int, error)
}

// NotificationRepository defines the durable notification ledger contract.
// Rows are never deleted; only the delivery outcome fields are ever updated.
type NotificationRepository interface {
	// Reserve atomically claims the (installment, type, channel) dedup key by
	// inserting the record. It returns domain.ErrDuplicateNotification when
	// the key is already taken, including by a concurrent run.
	Reserve(ctx context.Context, rec *domain.NotificationRecord) error

	MarkSent(ctx context.Context, id uuid.UUID, providerName, providerMessageID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, providerName string) error
	ListByAgency(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.NotificationRecord, int, error)
}

// JobRunRepository defines the append-only job run ledger contract.
type JobRunRepository interface {
	Start(ctx context.Context, run *domain.JobRun) error
	Complete(ctx context.Context, id uuid.UUID, status domain.JobStatus, recordsUpdated int, errorMessage string) error
	List(ctx context.Context, offset, limit int) ([]domain.JobRun, int, error)
}

// AuditRepository is the activity feed sink for engine mutations.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByAgency(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
}
