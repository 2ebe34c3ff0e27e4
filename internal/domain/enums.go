package domain

// PlanStatus represents the lifecycle of a payment plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// InstallmentStatus represents the lifecycle of a single installment.
type InstallmentStatus string

const (
	InstallmentStatusDraft     InstallmentStatus = "draft"
	InstallmentStatusPending   InstallmentStatus = "pending"
	InstallmentStatusPartial   InstallmentStatus = "partial"
	InstallmentStatusPaid      InstallmentStatus = "paid"
	InstallmentStatusOverdue   InstallmentStatus = "overdue"
	InstallmentStatusCancelled InstallmentStatus = "cancelled"
)

// NotificationType classifies why a notification was sent.
type NotificationType string

const (
	NotificationTypeDueSoon NotificationType = "due_soon"
	NotificationTypeOverdue NotificationType = "overdue"
)

// NotificationChannel is the delivery medium for a notification.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// DeliveryStatus represents the outcome of a single delivery attempt.
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

// JobStatus represents the state of a recorded job run.
type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

// Job names recorded in the job run ledger.
const (
	JobNameStatusUpdate = "installment_status_update"
	JobNameDispatch     = "notification_dispatch"
)
