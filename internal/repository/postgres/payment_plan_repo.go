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

type paymentPlanRepo struct {
	db *sqlx.DB
}

// NewPaymentPlanRepo creates a new PostgreSQL-backed PaymentPlanRepository.
func NewPaymentPlanRepo(db *sqlx.DB) port.PaymentPlanRepository {
	return &paymentPlanRepo{db: db}
}

func (r *paymentPlanRepo) GetByID(ctx context.Context, agencyID, planID uuid.UUID) (*domain.PaymentPlan, error) {
	var plan domain.PaymentPlan
	err := r.db.GetContext(ctx, &plan,
		"SELECT * FROM payment_plans WHERE id = $1 AND agency_id = $2", planID, agencyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("paymentPlanRepo.GetByID: %w", err)
	}
	return &plan, nil
}

func (r *paymentPlanRepo) GetByIDAnyAgency(ctx context.Context, planID uuid.UUID) (*domain.PaymentPlan, error) {
	var plan domain.PaymentPlan
	err := r.db.GetContext(ctx, &plan,
		"SELECT * FROM payment_plans WHERE id = $1", planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("paymentPlanRepo.GetByIDAnyAgency: %w", err)
	}
	return &plan, nil
}
