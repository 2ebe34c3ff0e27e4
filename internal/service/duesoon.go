package service

import (
	"time"

	"enrolpay/internal/domain"
)

// LocalDay truncates t to its calendar day in t's own location.
func LocalDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CutoffPassed reports whether the local clock time of now strictly exceeds
// the agency cutoff. An installment due today only becomes overdue after the
// cutoff has passed.
func CutoffPassed(now time.Time, cutoffHour, cutoffMinute int) bool {
	return now.Hour()*60+now.Minute() > cutoffHour*60+cutoffMinute
}

// DueSoonWindow returns the inclusive [from, to] due-date window for the
// given local day and threshold.
func DueSoonWindow(localToday time.Time, thresholdDays int) (from, to time.Time) {
	return localToday, localToday.AddDate(0, 0, thresholdDays)
}

// dayNumber converts a time to a location-independent calendar day ordinal.
// Due dates are stored as plain dates, so only the year/month/day components
// carry meaning regardless of the zone they were scanned in.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// IsDueSoon classifies a pending installment as due soon when its student due
// date falls within thresholdDays of localToday, inclusive on both ends.
// The flag is computed, never persisted, and never applies to non-pending
// installments.
func IsDueSoon(inst *domain.Installment, localToday time.Time, thresholdDays int) bool {
	if inst.Status != domain.InstallmentStatusPending {
		return false
	}
	due := dayNumber(inst.StudentDueDate)
	today := dayNumber(localToday)
	return due >= today && due <= today+thresholdDays
}
