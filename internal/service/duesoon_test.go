package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"enrolpay/internal/domain"
	"enrolpay/internal/service"
)

func day(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func pendingDue(due time.Time) *domain.Installment {
	return &domain.Installment{
		Status:         domain.InstallmentStatusPending,
		StudentDueDate: due,
	}
}

func TestIsDueSoon_InclusiveBounds(t *testing.T) {
	today := day(2025, 3, 10, time.UTC)
	threshold := 7

	cases := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"due today", day(2025, 3, 10, time.UTC), true},
		{"due at threshold", day(2025, 3, 17, time.UTC), true},
		{"due yesterday", day(2025, 3, 9, time.UTC), false},
		{"due past threshold", day(2025, 3, 18, time.UTC), false},
		{"mid window", day(2025, 3, 13, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.IsDueSoon(pendingDue(tc.due), today, threshold))
		})
	}
}

func TestIsDueSoon_NonPendingNeverDueSoon(t *testing.T) {
	today := day(2025, 3, 10, time.UTC)
	for _, status := range []domain.InstallmentStatus{
		domain.InstallmentStatusDraft,
		domain.InstallmentStatusPartial,
		domain.InstallmentStatusPaid,
		domain.InstallmentStatusOverdue,
		domain.InstallmentStatusCancelled,
	} {
		inst := pendingDue(today)
		inst.Status = status
		assert.False(t, service.IsDueSoon(inst, today, 7), "status %s", status)
	}
}

func TestIsDueSoon_LocationIndependent(t *testing.T) {
	// Due dates scan from the database as UTC midnight while the agency day
	// is built in agency-local time. Only the calendar day should matter.
	brisbane, err := time.LoadLocation("Australia/Brisbane")
	assert.NoError(t, err)

	today := day(2025, 3, 10, brisbane)
	due := day(2025, 3, 10, time.UTC)
	assert.True(t, service.IsDueSoon(pendingDue(due), today, 7))
}

func TestLocalDay(t *testing.T) {
	brisbane, err := time.LoadLocation("Australia/Brisbane")
	assert.NoError(t, err)

	// 2025-01-14 22:00 UTC is already 2025-01-15 08:00 in Brisbane.
	now := time.Date(2025, 1, 14, 22, 0, 0, 0, time.UTC).In(brisbane)
	localToday := service.LocalDay(now)
	assert.Equal(t, day(2025, 1, 15, brisbane), localToday)
}

func TestCutoffPassed(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{"before cutoff", 16, 59, false},
		{"exactly at cutoff", 17, 0, false},
		{"one minute past", 17, 1, true},
		{"well past", 23, 30, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2025, 3, 10, tc.hour, tc.minute, 45, 0, time.UTC)
			assert.Equal(t, tc.want, service.CutoffPassed(now, 17, 0))
		})
	}
}

func TestDueSoonWindow(t *testing.T) {
	today := day(2025, 3, 10, time.UTC)
	from, to := service.DueSoonWindow(today, 7)
	assert.Equal(t, today, from)
	assert.Equal(t, day(2025, 3, 17, time.UTC), to)
}
