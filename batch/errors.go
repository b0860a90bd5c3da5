package batch

import "errors"

var (
	// ErrFinderRequired is returned when a finder is not provided.
	ErrFinderRequired = errors.New("finder required")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid batch config")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
