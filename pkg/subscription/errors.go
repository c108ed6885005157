package subscription

import "errors"

var (
	// Validation failures, reported to the caller as typed results.
	ErrNoUser             = errors.New("no authenticated user")
	ErrTrialAlreadyActive = errors.New("subscription trial already active")
	ErrTrialNotAllowed    = errors.New("subscription trial not available for the free tier")
	ErrFreeTierUpgrade    = errors.New("downgrading to the free tier goes through Cancel")
	ErrInvalidCounter     = errors.New("unknown usage counter")

	// Store outcomes.
	ErrNotFound      = errors.New("subscription not found")
	ErrAlreadyExists = errors.New("subscription already exists")

	// ErrStoreUnavailable marks retryable store failures (write rejected,
	// network failure). The lifecycle performs no automatic retry; that
	// policy belongs to the caller.
	ErrStoreUnavailable = errors.New("subscription store unavailable")
)
