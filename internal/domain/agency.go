package domain

import (
	"fmt"
	"time"
)

// Location resolves the agency's IANA timezone.
func (a *Agency) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, a.Timezone)
	}
	return loc, nil
}

// CutoffClock parses the agency's overdue cutoff time ("HH:MM", 24h).
func (a *Agency) CutoffClock() (hour, minute int, err error) {
	t, perr := time.Parse("15:04", a.OverdueCutoffTime)
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCutoff, a.OverdueCutoffTime)
	}
	return t.Hour(), t.Minute(), nil
}

// ValidateConfig checks the per-agency settings the engine depends on.
// A failure here means the agency is skipped for the run, not that the run
// aborts.
func (a *Agency) ValidateConfig() error {
	if _, err := a.Location(); err != nil {
		return err
	}
	if _, _, err := a.CutoffClock(); err != nil {
		return err
	}
	if a.DueSoonThresholdDays < 1 || a.DueSoonThresholdDays > 30 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, a.DueSoonThresholdDays)
	}
	return nil
}
