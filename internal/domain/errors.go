package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Infrastructure wraps these so callers can branch with errors.Is without
// leaking provider details.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrMailDelivery = errors.New("mail delivery failed")
	ErrSubmission   = errors.New("ticket submission failed")
	ErrUnauthorized = errors.New("unauthorized")
)
