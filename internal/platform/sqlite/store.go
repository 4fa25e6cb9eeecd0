// Package sqlite implements the progress store on an embedded SQLite
// database, so saved games survive process restarts without any
// external service.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"geoquiz/internal/domain"
	"geoquiz/internal/store"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Verify interface compliance at compile time
var _ store.ProgressStore = (*Store)(nil)

// Store persists session snapshots in SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the SQLite database at path and
// applies embedded migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "progress_store"))

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("progress store opened", slog.String("path", path))

	return &Store{db: db, logger: logger}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save implements store.ProgressStore.Save. The snapshot is upserted
// under its progress key, replacing any previous save for the same
// mode, region and language.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidSnapshot, err)
	}

	pool, err := json.Marshal(session.Pool)
	if err != nil {
		return fmt.Errorf("encode pool: %w", err)
	}
	retry, err := json.Marshal(session.Retry)
	if err != nil {
		return fmt.Errorf("encode retry queue: %w", err)
	}

	key := store.KeyFor(session).String()
	now := time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saves (
			key, session_id, mode, region, language,
			pool, retry, current_code,
			score, total, round, elapsed_seconds,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			session_id      = excluded.session_id,
			pool            = excluded.pool,
			retry           = excluded.retry,
			current_code    = excluded.current_code,
			score           = excluded.score,
			total           = excluded.total,
			round           = excluded.round,
			elapsed_seconds = excluded.elapsed_seconds,
			updated_at      = excluded.updated_at`,
		key, session.ID.String(), string(session.Mode), session.Region, session.Language,
		string(pool), string(retry), session.Current,
		session.Score, session.Total, session.Round, int64(session.Elapsed.Seconds()),
		session.CreatedAt.UTC().UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save progress %s: %w", key, err)
	}

	s.logger.Debug("progress saved",
		slog.String("key", key),
		slog.Int("score", session.Score),
		slog.Int("remaining", session.Remaining()))

	return nil
}

// Load implements store.ProgressStore.Load.
func (s *Store) Load(ctx context.Context, key store.Key) (*domain.Session, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, mode, region, language,
		       pool, retry, current_code,
		       score, total, round, elapsed_seconds,
		       created_at, updated_at
		FROM saves WHERE key = ?`, key.String())

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load progress %s: %w", key.String(), err)
	}
	return session, nil
}

// Delete implements store.ProgressStore.Delete.
func (s *Store) Delete(ctx context.Context, key store.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE key = ?`, key.String()); err != nil {
		return fmt.Errorf("delete progress %s: %w", key.String(), err)
	}
	return nil
}

// List implements store.ProgressStore.List.
func (s *Store) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, mode, region, language,
		       pool, retry, current_code,
		       score, total, round, elapsed_seconds,
		       created_at, updated_at
		FROM saves ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list progress: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return sessions, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var session domain.Session
	var id, mode, pool, retry string
	var elapsedSeconds, created, updated int64

	err := row.Scan(&id, &mode, &session.Region, &session.Language,
		&pool, &retry, &session.Current,
		&session.Score, &session.Total, &session.Round, &elapsedSeconds,
		&created, &updated)
	if err != nil {
		return nil, err
	}

	session.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse session id: %w", err)
	}
	session.Mode = domain.Mode(mode)
	if err := json.Unmarshal([]byte(pool), &session.Pool); err != nil {
		return nil, fmt.Errorf("decode pool: %w", err)
	}
	if err := json.Unmarshal([]byte(retry), &session.Retry); err != nil {
		return nil, fmt.Errorf("decode retry queue: %w", err)
	}
	session.Elapsed = time.Duration(elapsedSeconds) * time.Second
	session.CreatedAt = time.UnixMilli(created).UTC()
	session.UpdatedAt = time.UnixMilli(updated).UTC()

	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidSnapshot, err)
	}

	return &session, nil
}
