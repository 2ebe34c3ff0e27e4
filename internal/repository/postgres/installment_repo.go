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

const dateLayout = "2006-01-02"

// detailQuery joins an installment row with its student, plan and college
// context. Only installments of active plans are ever eligible for engine work.
const detailQuery = `
	SELECT i.*,
	       s.id AS student_id,
	       s.first_name AS student_first_name,
	       s.last_name AS student_last_name,
	       s.email AS student_email,
	       s.phone AS student_phone,
	       s.agent_email AS agent_email,
	       c.id AS college_id,
	       c.name AS college_name,
	       c.admissions_email AS college_email
	FROM installments i
	JOIN payment_plans p ON p.id = i.payment_plan_id
	JOIN students s ON s.id = p.student_id
	JOIN colleges c ON c.id = p.college_id
	WHERE i.agency_id = $1 AND p.status = 'active'`

type installmentRepo struct {
	db *sqlx.DB
}

// NewInstallmentRepo creates a new PostgreSQL-backed InstallmentRepository.
func NewInstallmentRepo(db *sqlx.DB) port.InstallmentRepository {
	return &installmentRepo{db: db}
}

func (r *installmentRepo) ListOverdueCandidates(ctx context.Context, agencyID uuid.UUID, localToday time.Time, cutoffPassed bool) ([]domain.InstallmentDetail, error) {
	var rows []domain.InstallmentDetail
	err := r.db.SelectContext(ctx, &rows,
		detailQuery+`
		  AND i.status = 'pending'
		  AND (i.student_due_date < $2::date OR (i.student_due_date = $2::date AND $3))
		ORDER BY i.student_due_date, i.installment_number`,
		agencyID, localToday.Format(dateLayout), cutoffPassed)
	if err != nil {
		return nil, fmt.Errorf("installmentRepo.ListOverdueCandidates: %w", err)
	}
	return rows, nil
}

func (r *installmentRepo) MarkOverdue(ctx context.Context, agencyID, installmentID uuid.UUID) (bool, error) {
	// The status predicate is the only concurrency guard: a row concurrently
	// recorded as paid is no longer pending and the update becomes a no-op.
	result, err := r.db.ExecContext(ctx,
		`UPDATE installments SET status = 'overdue', updated_at = $1
		 WHERE id = $2 AND agency_id = $3 AND status = 'pending'`,
		time.Now().UTC(), installmentID, agencyID)
	if err != nil {
		return false, fmt.Errorf("installmentRepo.MarkOverdue: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *installmentRepo) ListDueSoon(ctx context.Context, agencyID uuid.UUID, from, to time.Time) ([]domain.InstallmentDetail, error) {
	var rows []domain.InstallmentDetail
	err := r.db.SelectContext(ctx, &rows,
		detailQuery+`
		  AND i.status = 'pending'
		  AND i.student_due_date BETWEEN $2::date AND $3::date
		ORDER BY i.student_due_date, i.installment_number`,
		agencyID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("installmentRepo.ListDueSoon: %w", err)
	}
	return rows, nil
}

func (r *installmentRepo) ListOverdue(ctx context.Context, agencyID uuid.UUID) ([]domain.InstallmentDetail, error) {
	var rows []domain.InstallmentDetail
	err := r.db.SelectContext(ctx, &rows,
		detailQuery+`
		  AND i.status = 'overdue'
		ORDER BY i.student_due_date, i.installment_number`,
		agencyID)
	if err != nil {
		return nil, fmt.Errorf("installmentRepo.ListOverdue: %w", err)
	}
	return rows, nil
}

func (r *installmentRepo) ListByPlan(ctx context.Context, agencyID, planID uuid.UUID) ([]domain.Installment, error) {
	var rows []domain.Installment
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM installments
		 WHERE agency_id = $1 AND payment_plan_id = $2
		 ORDER BY installment_number`,
		agencyID, planID)
	if err != nil {
		return nil, fmt.Errorf("installmentRepo.ListByPlan: %w", err)
	}
	return rows, nil
}

func (r *installmentRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, status domain.InstallmentStatus, offset, limit int) ([]domain.Installment, int, error) {
	where := "WHERE agency_id = $1"
	args := []interface{}{agencyID}
	if status != "" {
		where += " AND status = $2"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM installments "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("installmentRepo.ListByAgency count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM installments %s ORDER BY student_due_date, installment_number LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []domain.Installment
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("installmentRepo.ListByAgency: %w", err)
	}
	return rows, total, nil
}
