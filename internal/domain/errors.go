package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrNotFound is returned when a referenced entity does not exist:
	// a missing flag asset, a missing catalog entry, or a missing save.
	// Callers are expected to recover by substituting a default
	// (placeholder image, fresh game).
	ErrNotFound = errors.New("not found")

	// ErrStaleState is returned when persisted progress references
	// catalog data that no longer exists under the current language or
	// region configuration. Callers recover by offering a fresh game.
	ErrStaleState = errors.New("stale saved state")

	// ErrContractViolation is returned when a caller invokes an
	// operation in an invalid state, e.g. submitting an answer with no
	// current item. It indicates a programming error and is surfaced
	// immediately rather than silently ignored.
	ErrContractViolation = errors.New("contract violation")

	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")
)

// IsRecoverable reports whether the error is one the caller should
// degrade gracefully from instead of aborting.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrStaleState)
}
