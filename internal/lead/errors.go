package lead

import "errors"

var (
	ErrNotFound = errors.New("lead: not found")

	// ErrValidation is the root of all form validation failures; handlers
	// match on it to produce a 422 with a localized message.
	ErrValidation = errors.New("lead: validation failed")

	ErrEmailRequired   = errors.New("lead: email is required")
	ErrInvalidEmail    = errors.New("lead: email address is malformed")
	ErrEmptySubmission = errors.New("lead: at least one contact field is required")
)
