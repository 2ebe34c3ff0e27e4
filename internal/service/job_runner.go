package service

import (
	"context"
	"fmt"
	"log"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

// JobRunner wraps a job body with job run ledger bookkeeping: a running row is
// written before any work starts, and the outcome row is written on return.
// A run that dies in between stays in status running with no completed_at;
// detecting those is left to operations tooling.
type JobRunner struct {
	repo port.JobRunRepository
}

// NewJobRunner creates a new JobRunner.
func NewJobRunner(repo port.JobRunRepository) *JobRunner {
	return &JobRunner{repo: repo}
}

// Run executes fn under a job run record. fn returns the number of records it
// updated, a summary of non-fatal per-unit failures, and a fatal error. Only
// the fatal error marks the run failed; per-unit failures leave the run
// successful with an error message for the failing subset.
func (r *JobRunner) Run(ctx context.Context, jobName string, fn func(ctx context.Context) (updated int, unitErrs string, err error)) error {
	run := &domain.JobRun{JobName: jobName}
	if err := r.repo.Start(ctx, run); err != nil {
		return fmt.Errorf("starting job run %s: %w", jobName, err)
	}

	updated, unitErrs, err := fn(ctx)

	status := domain.JobStatusSuccess
	errMsg := unitErrs
	if err != nil {
		status = domain.JobStatusFailed
		errMsg = err.Error()
		if unitErrs != "" {
			errMsg = err.Error() + "; " + unitErrs
		}
	}

	if cerr := r.repo.Complete(ctx, run.ID, status, updated, errMsg); cerr != nil {
		log.Printf("jobRunner: failed to complete job run %s (%s): %v", jobName, run.ID, cerr)
	}
	return err
}
