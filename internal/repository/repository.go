package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"path/filepath"
	"time"

	"figedit/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// ErrNotFound is returned when a path has no recorded revisions
var ErrNotFound = errors.New("no revisions recorded")

// History defines the interface for the save journal
type History interface {
	// Write operations
	Append(ctx context.Context, rev domain.Revision) error

	// Read operations, newest first
	List(ctx context.Context, path string, limit int) ([]domain.Revision, error)
	Latest(ctx context.Context, path string) (*domain.Revision, error)

	// Close releases resources
	Close() error
}

// NewRevision builds a revision for data just written to path
func NewRevision(path, format string, fig domain.Figure, data []byte) domain.Revision {
	return domain.Revision{
		ID:      uuid.NewString(),
		Path:    NormalizePath(path),
		Format:  format,
		Figure:  fig,
		Digest:  Digest(data),
		SavedAt: time.Now().UTC(),
	}
}

// Digest returns the hex BLAKE2b-256 sum of data
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NormalizePath makes journal keys independent of the working directory
func NormalizePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
