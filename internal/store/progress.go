package store

import (
	"context"
	"fmt"

	"geoquiz/internal/domain"
)

// Key identifies one saved game. The original progress model keeps one
// save per (mode, region, language) combination, so resuming a flags
// game never collides with a capitals game over the same region.
type Key struct {
	Mode     domain.Mode
	Region   string
	Language string
}

// KeyFor returns the progress key of a session.
func KeyFor(s *domain.Session) Key {
	return Key{Mode: s.Mode, Region: s.Region, Language: s.Language}
}

// String renders the key in its canonical "mode|region|language" form,
// used as the storage key.
func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Mode, k.Region, k.Language)
}

// Validate checks that the key is fully specified.
func (k Key) Validate() error {
	if !k.Mode.Valid() {
		return fmt.Errorf("%w: key mode %q", ErrInvalidSnapshot, k.Mode)
	}
	if k.Region == "" {
		return fmt.Errorf("%w: key region is empty", ErrInvalidSnapshot)
	}
	if k.Language == "" {
		return fmt.Errorf("%w: key language is empty", ErrInvalidSnapshot)
	}
	return nil
}

// ProgressStore persists session snapshots so an interrupted game can
// be resumed. Save is called after every answer, bounding the loss on
// abrupt termination to the answers given since the last save.
type ProgressStore interface {
	// Save upserts the snapshot under its session's progress key.
	// Returns ErrInvalidSnapshot if the session fails validation.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the snapshot stored under the key.
	// Returns ErrSaveNotFound if no save exists for the key.
	Load(ctx context.Context, key Key) (*domain.Session, error)

	// Delete removes the save stored under the key. Deleting a key
	// with no save is not an error.
	Delete(ctx context.Context, key Key) error

	// List returns every stored snapshot, most recently updated first.
	// Used by the menu to show per-mode progress summaries.
	List(ctx context.Context) ([]*domain.Session, error)

	// Close releases the underlying storage.
	Close() error
}

// CatalogView is the subset of the catalog the store needs to detect
// stale saves.
type CatalogView interface {
	HasAll(codes ...string) bool
}

// ValidateAgainstCatalog cross-references every country code a snapshot
// holds against the active catalog. Returns ErrStaleSave when any code
// is unknown, which callers treat as "offer a fresh game".
func ValidateAgainstCatalog(s *domain.Session, catalog CatalogView) error {
	if !catalog.HasAll(s.Pool...) || !catalog.HasAll(s.Retry...) || !catalog.HasAll(s.Current) {
		return ErrStaleSave
	}
	return nil
}
