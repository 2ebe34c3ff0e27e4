package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

// AgencyStatusResult is the per-agency outcome of one status update run.
type AgencyStatusResult struct {
	AgencyID     uuid.UUID `json:"agency_id"`
	AgencyName   string    `json:"agency_name"`
	UpdatedCount int       `json:"updated_count"`
	Error        string    `json:"error,omitempty"`
}

// StatusEngine re-evaluates time-dependent installment state per agency:
// pending installments past their agency-local due boundary transition to
// overdue. Reruns are idempotent because only pending rows are ever selected.
type StatusEngine struct {
	agencies     port.AgencyRepository
	installments port.InstallmentRepository
	audit        port.AuditRepository
	runner       *JobRunner
	concurrency  int

	// NowFunc supplies the current instant; tests override it.
	NowFunc func() time.Time
}

// NewStatusEngine creates a new StatusEngine. concurrency bounds how many
// agencies are processed in parallel.
func NewStatusEngine(agencies port.AgencyRepository, installments port.InstallmentRepository, audit port.AuditRepository, runner *JobRunner, concurrency int) *StatusEngine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &StatusEngine{
		agencies:     agencies,
		installments: installments,
		audit:        audit,
		runner:       runner,
		concurrency:  concurrency,
		NowFunc:      time.Now,
	}
}

// RunStatusUpdate executes one full status transition pass across all active
// agencies, recorded in the job run ledger. Per-agency failures are isolated:
// a bad timezone or a query error marks that agency's result and the run
// continues. Only shared-infrastructure failures abort the run.
func (e *StatusEngine) RunStatusUpdate(ctx context.Context) ([]AgencyStatusResult, error) {
	var results []AgencyStatusResult

	err := e.runner.Run(ctx, domain.JobNameStatusUpdate, func(ctx context.Context) (int, string, error) {
		agencies, err := e.agencies.ListActive(ctx)
		if err != nil {
			return 0, "", fmt.Errorf("listing agencies: %w", err)
		}

		results = e.processAgencies(ctx, agencies)

		total := 0
		var unitErrs []string
		for _, res := range results {
			total += res.UpdatedCount
			if res.Error != "" {
				unitErrs = append(unitErrs, fmt.Sprintf("%s: %s", res.AgencyName, res.Error))
			}
		}
		return total, strings.Join(unitErrs, "; "), nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// processAgencies fans agency work out over a bounded pool.
func (e *StatusEngine) processAgencies(ctx context.Context, agencies []domain.Agency) []AgencyStatusResult {
	results := make([]AgencyStatusResult, len(agencies))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i := range agencies {
		agency := agencies[i]
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			results[i] = e.processAgency(ctx, &agency)
		}(i)
	}
	wg.Wait()
	return results
}

func (e *StatusEngine) processAgency(ctx context.Context, agency *domain.Agency) AgencyStatusResult {
	res := AgencyStatusResult{AgencyID: agency.ID, AgencyName: agency.Name}

	if err := agency.ValidateConfig(); err != nil {
		log.Printf("statusEngine: skipping agency %s: %v", agency.Slug, err)
		res.Error = err.Error()
		return res
	}

	loc, _ := agency.Location()
	cutoffHour, cutoffMinute, _ := agency.CutoffClock()
	now := e.NowFunc().In(loc)
	localToday := LocalDay(now)
	cutoffPassed := CutoffPassed(now, cutoffHour, cutoffMinute)

	candidates, err := e.installments.ListOverdueCandidates(ctx, agency.ID, localToday, cutoffPassed)
	if err != nil {
		log.Printf("statusEngine: agency %s: %v", agency.Slug, err)
		res.Error = err.Error()
		return res
	}

	for i := range candidates {
		inst := &candidates[i]

		updated, err := e.installments.MarkOverdue(ctx, agency.ID, inst.ID)
		if err != nil {
			log.Printf("statusEngine: agency %s installment %s: %v", agency.Slug, inst.ID, err)
			res.Error = err.Error()
			continue
		}
		if !updated {
			// Concurrently paid or already transitioned; benign no-op.
			continue
		}
		res.UpdatedCount++
		e.auditTransition(ctx, agency, inst)
	}

	if res.UpdatedCount > 0 {
		log.Printf("statusEngine: agency %s: %d installments marked overdue", agency.Slug, res.UpdatedCount)
	}
	return res
}

func (e *StatusEngine) auditTransition(ctx context.Context, agency *domain.Agency, inst *domain.InstallmentDetail) {
	meta, _ := json.Marshal(map[string]interface{}{
		"before_status":      domain.InstallmentStatusPending,
		"after_status":       domain.InstallmentStatusOverdue,
		"student_name":       inst.StudentName(),
		"amount":             inst.Amount,
		"installment_number": inst.InstallmentNumber,
		"student_due_date":   inst.StudentDueDate.Format("2006-01-02"),
	})
	entry := &domain.AuditEntry{
		AgencyID:    agency.ID,
		EntityType:  "installment",
		EntityID:    inst.ID,
		Action:      "status_overdue",
		Description: fmt.Sprintf("Installment #%d for %s (%s) marked overdue", inst.InstallmentNumber, inst.StudentName(), inst.Amount.StringFixed(2)),
		Metadata:    meta,
	}
	if err := e.audit.Create(ctx, entry); err != nil {
		// Audit failures never roll back a committed transition.
		log.Printf("statusEngine: audit entry for installment %s: %v", inst.ID, err)
	}
}
