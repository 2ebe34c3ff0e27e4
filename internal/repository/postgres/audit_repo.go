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

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_entries (id, agency_id, entity_type, entity_id, action, description, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.AgencyID, entry.EntityType, entry.EntityID,
		entry.Action, entry.Description, entry.Metadata, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	return nil
}

func (r *auditRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM audit_entries WHERE agency_id = $1", agencyID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByAgency count: %w", err)
	}

	var entries []domain.AuditEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_entries
		 WHERE agency_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		agencyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByAgency: %w", err)
	}
	return entries, total, nil
}
