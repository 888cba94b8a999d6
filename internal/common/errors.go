// Package common defines shared constants and sentinel errors used across
// breachwatch components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (malformed caller input, e.g. a bad email address).
	ErrorValidation = errors.New("validation error")

	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Breach-source errors. An unreachable source is recovered locally by
	// falling back to the simulated catalog, never surfaced to the caller
	// of a check.
	ErrSourceUnavailable = errors.New("breach source unavailable")
)
