package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"figedit/internal/domain"
	"figedit/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.History using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.History = (*Repository)(nil)

// New opens (creating if needed) the journal database at dbPath
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := r.db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS revisions (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		format TEXT NOT NULL,
		name TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		digest TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_revisions_path ON revisions(path, saved_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Append records one revision
func (r *Repository) Append(ctx context.Context, rev domain.Revision) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revisions (id, path, format, name, width, height, digest, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rev.ID, rev.Path, rev.Format, rev.Figure.Name, rev.Figure.Width, rev.Figure.Height,
		rev.Digest, rev.SavedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert revision: %w", err)
	}
	return nil
}

// List returns up to limit revisions for path, newest first.
// A limit of zero or less returns every revision.
func (r *Repository) List(ctx context.Context, path string, limit int) ([]domain.Revision, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, path, format, name, width, height, digest, saved_at
		FROM revisions
		WHERE path = ?
		ORDER BY saved_at DESC, rowid DESC
		LIMIT ?
	`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	var revs []domain.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revisions: %w", err)
	}

	return revs, nil
}

// Latest returns the newest revision for path
func (r *Repository) Latest(ctx context.Context, path string) (*domain.Revision, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, path, format, name, width, height, digest, saved_at
		FROM revisions
		WHERE path = ?
		ORDER BY saved_at DESC, rowid DESC
		LIMIT 1
	`, path)

	rev, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, path)
	}
	return rev, err
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(s scanner) (*domain.Revision, error) {
	var (
		rev     domain.Revision
		savedAt int64
	)
	err := s.Scan(&rev.ID, &rev.Path, &rev.Format,
		&rev.Figure.Name, &rev.Figure.Width, &rev.Figure.Height,
		&rev.Digest, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan revision: %w", err)
	}
	rev.SavedAt = time.Unix(0, savedAt).UTC()
	return &rev, nil
}
