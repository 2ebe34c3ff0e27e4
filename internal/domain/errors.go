package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrAgencyInactive        = errors.New("agency is inactive")
	ErrInvalidTimezone       = errors.New("agency has an invalid timezone")
	ErrInvalidCutoff         = errors.New("agency has an invalid overdue cutoff time")
	ErrInvalidThreshold      = errors.New("due soon threshold must be between 1 and 30 days")
	ErrDuplicateNotification = errors.New("notification already sent for this installment, type and channel")
	ErrNoRecipients          = errors.New("no recipients resolved for notification")
)
