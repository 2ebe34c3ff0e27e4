package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Reserve(ctx context.Context, rec *domain.NotificationRecord) error {
	rec.ID = uuid.New()
	rec.DeliveryStatus = domain.DeliveryStatusPending
	rec.CreatedAt = time.Now().UTC()

	// The unique index on (installment_id, notification_type, channel) is the
	// synchronization primitive: of any number of concurrent runs racing on
	// the same key, exactly one insert wins.
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_records
		   (id, student_id, installment_id, agency_id, notification_type, channel, delivery_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (installment_id, notification_type, channel) DO NOTHING`,
		rec.ID, rec.StudentID, rec.InstallmentID, rec.AgencyID,
		rec.NotificationType, rec.Channel, rec.DeliveryStatus, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Reserve: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDuplicateNotification
	}
	return nil
}

func (r *notificationRepo) MarkSent(ctx context.Context, id uuid.UUID, providerName, providerMessageID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_records
		 SET delivery_status = 'sent', sent_at = $1, provider_name = $2, provider_message_id = $3
		 WHERE id = $4`,
		time.Now().UTC(), providerName, providerMessageID, id)
	if err != nil {
		return fmt.Errorf("notificationRepo.MarkSent: %w", err)
	}
	return nil
}

func (r *notificationRepo) MarkFailed(ctx context.Context, id uuid.UUID, providerName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notification_records
		 SET delivery_status = 'failed', provider_name = $1
		 WHERE id = $2`,
		providerName, id)
	if err != nil {
		return fmt.Errorf("notificationRepo.MarkFailed: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.NotificationRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM notification_records WHERE agency_id = $1", agencyID)
	if err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByAgency count: %w", err)
	}

	var records []domain.NotificationRecord
	err = r.db.SelectContext(ctx, &records,
		`SELECT * FROM notification_records
		 WHERE agency_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		agencyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByAgency: %w", err)
	}
	return records, total, nil
}
