package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"enrolpay/internal/domain"
	"enrolpay/internal/port"
)

// DispatchResult aggregates the outcome of one notification dispatch run.
type DispatchResult struct {
	Sent             int `json:"sent"`
	SkippedDuplicate int `json:"skipped_duplicate"`
	Failed           int `json:"failed"`
}

func (r *DispatchResult) add(other DispatchResult) {
	r.Sent += other.Sent
	r.SkippedDuplicate += other.SkippedDuplicate
	r.Failed += other.Failed
}

// Dispatcher selects installments eligible for notification, reserves dedup
// keys and delivers through the channel providers. Eligibility is re-derived
// from current state on every run, so a missed run is self-healing; the
// durable reservation keeps delivery at-most-once regardless of how many runs
// overlap.
type Dispatcher struct {
	agencies      port.AgencyRepository
	installments  port.InstallmentRepository
	notifications port.NotificationRepository
	audit         port.AuditRepository
	runner        *JobRunner
	senders       map[domain.NotificationChannel]port.MessageSender

	// NowFunc supplies the current instant; tests override it.
	NowFunc func() time.Time
}

// NewDispatcher creates a new Dispatcher. senders maps each channel to its
// delivery provider; a channel with no sender is never attempted.
func NewDispatcher(agencies port.AgencyRepository, installments port.InstallmentRepository, notifications port.NotificationRepository, audit port.AuditRepository, runner *JobRunner, senders map[domain.NotificationChannel]port.MessageSender) *Dispatcher {
	return &Dispatcher{
		agencies:      agencies,
		installments:  installments,
		notifications: notifications,
		audit:         audit,
		runner:        runner,
		senders:       senders,
		NowFunc:       time.Now,
	}
}

// RunNotificationDispatch executes one dispatch pass across all active
// agencies, recorded in the job run ledger. Provider failures are terminal
// for their reservation and never abort the batch.
func (d *Dispatcher) RunNotificationDispatch(ctx context.Context) (DispatchResult, error) {
	var result DispatchResult

	err := d.runner.Run(ctx, domain.JobNameDispatch, func(ctx context.Context) (int, string, error) {
		agencies, err := d.agencies.ListActive(ctx)
		if err != nil {
			return 0, "", fmt.Errorf("listing agencies: %w", err)
		}

		var unitErrs []string
		for i := range agencies {
			agencyResult, agencyErr := d.dispatchAgency(ctx, &agencies[i])
			result.add(agencyResult)
			if agencyErr != "" {
				unitErrs = append(unitErrs, fmt.Sprintf("%s: %s", agencies[i].Name, agencyErr))
			}
		}
		return result.Sent, strings.Join(unitErrs, "; "), nil
	})
	if err != nil {
		return DispatchResult{}, err
	}
	return result, nil
}

// dispatchAgency handles one agency; its error string marks the agency as the
// failing subset without aborting other agencies.
func (d *Dispatcher) dispatchAgency(ctx context.Context, agency *domain.Agency) (DispatchResult, string) {
	var res DispatchResult

	if err := agency.ValidateConfig(); err != nil {
		log.Printf("dispatcher: skipping agency %s: %v", agency.Slug, err)
		return res, err.Error()
	}

	loc, _ := agency.Location()
	localToday := LocalDay(d.NowFunc().In(loc))
	from, to := DueSoonWindow(localToday, agency.DueSoonThresholdDays)

	dueSoon, err := d.installments.ListDueSoon(ctx, agency.ID, from, to)
	if err != nil {
		log.Printf("dispatcher: agency %s: %v", agency.Slug, err)
		return res, err.Error()
	}
	overdue, err := d.installments.ListOverdue(ctx, agency.ID)
	if err != nil {
		log.Printf("dispatcher: agency %s: %v", agency.Slug, err)
		return res, err.Error()
	}

	for i := range dueSoon {
		d.notifyInstallment(ctx, agency, &dueSoon[i], domain.NotificationTypeDueSoon, &res)
	}
	for i := range overdue {
		d.notifyInstallment(ctx, agency, &overdue[i], domain.NotificationTypeOverdue, &res)
	}

	d.sendCollegeDigests(ctx, agency, overdue, &res)

	return res, ""
}

// notifyInstallment attempts delivery for one installment and type on every
// enabled channel, reserving before sending. A failed delivery marks the
// reservation failed and permanently consumes the key; there is no retry.
func (d *Dispatcher) notifyInstallment(ctx context.Context, agency *domain.Agency, inst *domain.InstallmentDetail, typ domain.NotificationType, res *DispatchResult) {
	channels := []domain.NotificationChannel{domain.ChannelEmail}
	if agency.SMSEnabled {
		channels = append(channels, domain.ChannelSMS)
	}

	for _, channel := range channels {
		sender, ok := d.senders[channel]
		if !ok {
			continue
		}

		rec := &domain.NotificationRecord{
			StudentID:        inst.StudentID,
			InstallmentID:    inst.ID,
			AgencyID:         agency.ID,
			NotificationType: typ,
			Channel:          channel,
		}
		if err := d.notifications.Reserve(ctx, rec); err != nil {
			if errors.Is(err, domain.ErrDuplicateNotification) {
				res.SkippedDuplicate++
				continue
			}
			log.Printf("dispatcher: reserving %s/%s/%s: %v", inst.ID, typ, channel, err)
			res.Failed++
			continue
		}

		recipients := resolveRecipients(agency, inst, channel)
		if len(recipients) == 0 {
			log.Printf("dispatcher: %v for installment %s on %s", domain.ErrNoRecipients, inst.ID, channel)
			d.markFailed(ctx, rec.ID, sender.Name())
			res.Failed++
			continue
		}

		subject, body := renderInstallmentMessage(typ, channel, inst)

		var providerMessageID string
		var sendErr error
		for _, recipient := range recipients {
			msgID, err := sender.Send(ctx, port.Message{Recipient: recipient, Subject: subject, Body: body})
			if err != nil {
				sendErr = err
				break
			}
			providerMessageID = msgID
		}
		if sendErr != nil {
			log.Printf("dispatcher: delivery %s/%s/%s via %s: %v", inst.ID, typ, channel, sender.Name(), sendErr)
			d.markFailed(ctx, rec.ID, sender.Name())
			res.Failed++
			continue
		}

		if err := d.notifications.MarkSent(ctx, rec.ID, sender.Name(), providerMessageID); err != nil {
			log.Printf("dispatcher: marking sent %s: %v", rec.ID, err)
		}
		res.Sent++
	}
}

func (d *Dispatcher) markFailed(ctx context.Context, id uuid.UUID, provider string) {
	if err := d.notifications.MarkFailed(ctx, id, provider); err != nil {
		log.Printf("dispatcher: marking failed %s: %v", id, err)
	}
}

// resolveRecipients maps a channel and notification context to addresses.
// Per-student alerts go to the assigned sales agent and the agency admins on
// email, and to the student on SMS.
func resolveRecipients(agency *domain.Agency, inst *domain.InstallmentDetail, channel domain.NotificationChannel) []string {
	switch channel {
	case domain.ChannelEmail:
		var out []string
		seen := map[string]bool{}
		for _, addr := range []string{inst.AgentEmail, agency.AdminEmail} {
			if addr != "" && !seen[addr] {
				seen[addr] = true
				out = append(out, addr)
			}
		}
		return out
	case domain.ChannelSMS:
		if inst.StudentPhone == "" {
			return nil
		}
		return []string{inst.StudentPhone}
	}
	return nil
}

// sendCollegeDigests sends one summary email per college covering all of its
// currently overdue installments, instead of one email per installment. The
// digest is not keyed by installment so it carries no dedup reservation; it
// is recorded in the activity feed.
func (d *Dispatcher) sendCollegeDigests(ctx context.Context, agency *domain.Agency, overdue []domain.InstallmentDetail, res *DispatchResult) {
	sender, ok := d.senders[domain.ChannelEmail]
	if !ok || len(overdue) == 0 {
		return
	}

	groups := map[uuid.UUID][]*domain.InstallmentDetail{}
	var order []uuid.UUID
	for i := range overdue {
		inst := &overdue[i]
		if _, seen := groups[inst.CollegeID]; !seen {
			order = append(order, inst.CollegeID)
		}
		groups[inst.CollegeID] = append(groups[inst.CollegeID], inst)
	}

	for _, collegeID := range order {
		rows := groups[collegeID]
		if rows[0].CollegeEmail == "" {
			log.Printf("dispatcher: college %s has no admissions email, digest skipped", rows[0].CollegeName)
			continue
		}

		subject, body := renderCollegeDigest(rows[0].CollegeName, rows)
		msgID, err := sender.Send(ctx, port.Message{Recipient: rows[0].CollegeEmail, Subject: subject, Body: body})
		if err != nil {
			log.Printf("dispatcher: college digest for %s via %s: %v", rows[0].CollegeName, sender.Name(), err)
			res.Failed++
			continue
		}
		res.Sent++

		meta, _ := json.Marshal(map[string]interface{}{
			"installment_count":   len(rows),
			"provider_message_id": msgID,
		})
		entry := &domain.AuditEntry{
			AgencyID:    agency.ID,
			EntityType:  "college",
			EntityID:    collegeID,
			Action:      "overdue_digest_sent",
			Description: fmt.Sprintf("Overdue digest for %s covering %d installments", rows[0].CollegeName, len(rows)),
			Metadata:    meta,
		}
		if err := d.audit.Create(ctx, entry); err != nil {
			log.Printf("dispatcher: audit entry for college %s: %v", collegeID, err)
		}
	}
}
