package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates the raw analytical store could not be read.
	ErrSourceUnavailable = errors.New("source store unavailable")

	// ErrUnsupportedDriver indicates an unknown source store driver.
	ErrUnsupportedDriver = errors.New("unsupported source driver")

	// ErrArchiveClosed indicates a write against a closed archive.
	ErrArchiveClosed = errors.New("archive closed")

	// ErrNotConfigured indicates a required collaborator was not wired.
	ErrNotConfigured = errors.New("not configured")
)
