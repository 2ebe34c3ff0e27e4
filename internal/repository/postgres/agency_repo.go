package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

type agencyRepo struct {
	db *sqlx.DB
}

// NewAgencyRepo creates a new PostgreSQL-backed AgencyRepository.
func NewAgencyRepo(db *sqlx.DB) port.AgencyRepository {
	return &agencyRepo{db: db}
}

func (r *agencyRepo) ListActive(ctx context.Context) ([]domain.Agency, error) {
	var agencies []domain.Agency
	err := r.db.SelectContext(ctx, &agencies,
		"SELECT * FROM agencies WHERE is_active = true ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("agencyRepo.ListActive: %w", err)
	}
	return agencies, nil
}

func (r *agencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	var agency domain.Agency
	err := r.db.GetContext(ctx, &agency, "SELECT * FROM agencies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("agencyRepo.GetByID: %w", err)
	}
	return &agency, nil
}
