package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Agency represents an isolated education-agency tenant. Agencies are managed
// by an external admin surface and are read-only to the engine.
type Agency struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Slug                 string    `db:"slug" json:"slug"`
	Timezone             string    `db:"timezone" json:"timezone"`
	OverdueCutoffTime    string    `db:"overdue_cutoff_time" json:"overdue_cutoff_time"`
	DueSoonThresholdDays int       `db:"due_soon_threshold_days" json:"due_soon_threshold_days"`
	SMSEnabled           bool      `db:"sms_enabled" json:"sms_enabled"`
	AdminEmail           string    `db:"admin_email" json:"admin_email"`
	IsActive             bool      `db:"is_active" json:"is_active"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Student represents a student enrolled through an agency.
type Student struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AgencyID   uuid.UUID `db:"agency_id" json:"agency_id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	AgentEmail string    `db:"agent_email" json:"agent_email"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// College represents an institution that receives installment payments.
type College struct {
	ID              uuid.UUID `db:"id" json:"id"`
	AgencyID        uuid.UUID `db:"agency_id" json:"agency_id"`
	Name            string    `db:"name" json:"name"`
	AdmissionsEmail string    `db:"admissions_email" json:"admissions_email"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// PaymentPlan represents the agreed payment schedule between a student and a
// college, created by an external collaborator.
type PaymentPlan struct {
	ID                    uuid.UUID       `db:"id" json:"id"`
	AgencyID              uuid.UUID       `db:"agency_id" json:"agency_id"`
	StudentID             uuid.UUID       `db:"student_id" json:"student_id"`
	CollegeID             uuid.UUID       `db:"college_id" json:"college_id"`
	TotalAmount           decimal.Decimal `db:"total_amount" json:"total_amount"`
	CommissionRatePercent decimal.Decimal `db:"commission_rate_percent" json:"commission_rate_percent"`
	ExpectedCommission    decimal.Decimal `db:"expected_commission" json:"expected_commission"`
	Status                PlanStatus      `db:"status" json:"status"`
	CreatedAt             time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at" json:"updated_at"`
}

// Installment represents one scheduled portion of a payment plan.
// Status is mutated by this engine (pending to overdue) and by the external
// payment-recording collaborator (pending/partial to paid); paid_date,
// paid_amount and paid status are never written by the engine.
type Installment struct {
	ID                  uuid.UUID         `db:"id" json:"id"`
	PaymentPlanID       uuid.UUID         `db:"payment_plan_id" json:"payment_plan_id"`
	AgencyID            uuid.UUID         `db:"agency_id" json:"agency_id"`
	Amount              decimal.Decimal   `db:"amount" json:"amount"`
	StudentDueDate      time.Time         `db:"student_due_date" json:"student_due_date"`
	CollegeDueDate      time.Time         `db:"college_due_date" json:"college_due_date"`
	Status              InstallmentStatus `db:"status" json:"status"`
	PaidDate            *time.Time        `db:"paid_date" json:"paid_date"`
	PaidAmount          decimal.Decimal   `db:"paid_amount" json:"paid_amount"`
	GeneratesCommission bool              `db:"generates_commission" json:"generates_commission"`
	InstallmentNumber   int               `db:"installment_number" json:"installment_number"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time         `db:"updated_at" json:"updated_at"`
}

// NotificationRecord is the durable dedup ledger for outbound notifications.
// At most one row exists per (installment_id, notification_type, channel) for
// the life of the installment; rows are never deleted.
type NotificationRecord struct {
	ID                uuid.UUID           `db:"id" json:"id"`
	StudentID         uuid.UUID           `db:"student_id" json:"student_id"`
	InstallmentID     uuid.UUID           `db:"installment_id" json:"installment_id"`
	AgencyID          uuid.UUID           `db:"agency_id" json:"agency_id"`
	NotificationType  NotificationType    `db:"notification_type" json:"notification_type"`
	Channel           NotificationChannel `db:"channel" json:"channel"`
	SentAt            *time.Time          `db:"sent_at" json:"sent_at"`
	DeliveryStatus    DeliveryStatus      `db:"delivery_status" json:"delivery_status"`
	ProviderName      string              `db:"provider_name" json:"provider_name"`
	ProviderMessageID string              `db:"provider_message_id" json:"provider_message_id"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
}

// JobRun records one execution of a scheduled job, append-only.
// A row left in status running with no completed_at signals a crashed run;
// detection is left to operations tooling.
type JobRun struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	JobName        string     `db:"job_name" json:"job_name"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at"`
	Status         JobStatus  `db:"status" json:"status"`
	RecordsUpdated int        `db:"records_updated" json:"records_updated"`
	ErrorMessage   string     `db:"error_message" json:"error_message"`
}

// AuditEntry is one event in the activity feed.
type AuditEntry struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	AgencyID    uuid.UUID       `db:"agency_id" json:"agency_id"`
	EntityType  string          `db:"entity_type" json:"entity_type"`
	EntityID    uuid.UUID       `db:"entity_id" json:"entity_id"`
	Action      string          `db:"action" json:"action"`
	Description string          `db:"description" json:"description"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
