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

type jobRunRepo struct {
	db *sqlx.DB
}

// NewJobRunRepo creates a new PostgreSQL-backed JobRunRepository.
func NewJobRunRepo(db *sqlx.DB) port.JobRunRepository {
	return &jobRunRepo{db: db}
}

func (r *jobRunRepo) Start(ctx context.Context, run *domain.JobRun) error {
	run.ID = uuid.New()
	run.StartedAt = time.Now().UTC()
	run.Status = domain.JobStatusRunning

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO job_runs (id, job_name, started_at, status, records_updated, error_message)
		 VALUES ($1, $2, $3, $4, 0, '')`,
		run.ID, run.JobName, run.StartedAt, run.Status)
	if err != nil {
		return fmt.Errorf("jobRunRepo.Start: %w", err)
	}
	return nil
}

func (r *jobRunRepo) Complete(ctx context.Context, id uuid.UUID, status domain.JobStatus, recordsUpdated int, errorMessage string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE job_runs
		 SET completed_at = $1, status = $2, records_updated = $3, error_message = $4
		 WHERE id = $5`,
		time.Now().UTC(), status, recordsUpdated, errorMessage, id)
	if err != nil {
		return fmt.Errorf("jobRunRepo.Complete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRunRepo) List(ctx context.Context, offset, limit int) ([]domain.JobRun, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM job_runs")
	if err != nil {
		return nil, 0, fmt.Errorf("jobRunRepo.List count: %w", err)
	}

	var runs []domain.JobRun
	err = r.db.SelectContext(ctx, &runs,
		"SELECT * FROM job_runs ORDER BY started_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRunRepo.List: %w", err)
	}
	return runs, total, nil
}
