package store

import (
	"errors"
	"fmt"

	"geoquiz/internal/domain"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. It wraps domain.ErrNotFound so callers can classify it
	// with the domain taxonomy.
	ErrNotFound = fmt.Errorf("%w: store entity", domain.ErrNotFound)

	// ErrSaveNotFound indicates that no saved progress exists for the
	// requested key.
	ErrSaveNotFound = fmt.Errorf("%w: saved progress", domain.ErrNotFound)

	// ErrStaleSave indicates that saved progress references country
	// codes absent from the active catalog; the save cannot be resumed
	// and the caller should offer a fresh game.
	ErrStaleSave = fmt.Errorf("%w: saved progress references unknown countries", domain.ErrStaleState)

	// ErrInvalidSnapshot is returned when a snapshot fails validation
	// before being stored.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsStaleSaveError checks if the error marks a save as unresumable
// under the current catalog.
func IsStaleSaveError(err error) bool {
	return errors.Is(err, domain.ErrStaleState)
}
