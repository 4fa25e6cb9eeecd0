package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz/internal/domain"
	"geoquiz/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "progress.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestSession(t *testing.T) *domain.Session {
	t.Helper()
	session, err := domain.NewSession(domain.ModeFlagToName, domain.RegionAll, "en", []string{"FR", "JP", "PE"})
	require.NoError(t, err)
	return session
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	session := newTestSession(t)
	session.Retry = []string{"DE"}
	session.Current = "FR"
	session.Score = 2
	session.Round = 1
	session.Elapsed = 95 * time.Second

	require.NoError(t, s.Save(ctx, session))

	loaded, err := s.Load(ctx, store.KeyFor(session))
	require.NoError(t, err)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.Mode, loaded.Mode)
	assert.Equal(t, session.Region, loaded.Region)
	assert.Equal(t, session.Language, loaded.Language)
	assert.Equal(t, session.Pool, loaded.Pool)
	assert.Equal(t, session.Retry, loaded.Retry)
	assert.Equal(t, session.Current, loaded.Current)
	assert.Equal(t, session.Score, loaded.Score)
	assert.Equal(t, session.Total, loaded.Total)
	assert.Equal(t, session.Round, loaded.Round)
	assert.Equal(t, session.Elapsed, loaded.Elapsed)
}

func TestSaveUpsertsByKey(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	session := newTestSession(t)
	require.NoError(t, s.Save(ctx, session))

	session.Score = 5
	session.Pool = []string{"PE"}
	require.NoError(t, s.Save(ctx, session))

	loaded, err := s.Load(ctx, store.KeyFor(session))
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Score)
	assert.Equal(t, []string{"PE"}, loaded.Pool)

	// Still a single save for the key.
	sessions, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestLoadMissingKey(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	_, err := s.Load(context.Background(), store.Key{
		Mode:     domain.ModeNameToCapital,
		Region:   domain.RegionAll,
		Language: "en",
	})
	assert.ErrorIs(t, err, store.ErrSaveNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	session := newTestSession(t)
	require.NoError(t, s.Save(ctx, session))
	require.NoError(t, s.Delete(ctx, store.KeyFor(session)))

	_, err := s.Load(ctx, store.KeyFor(session))
	assert.ErrorIs(t, err, store.ErrSaveNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, store.KeyFor(session)))
}

func TestListOrdersByRecency(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	first := newTestSession(t)
	require.NoError(t, s.Save(ctx, first))

	second, err := domain.NewSession(domain.ModeNameToCapital, "Europe", "en", []string{"FR"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond) // distinct updated_at
	require.NoError(t, s.Save(ctx, second))

	sessions, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, first.ID, sessions[1].ID)
}

func TestSaveRejectsInvalidSession(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	session := newTestSession(t)
	session.Round = 7
	err := s.Save(context.Background(), session)
	assert.ErrorIs(t, err, store.ErrInvalidSnapshot)
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open("  ", nil)
	assert.Error(t, err)
}
