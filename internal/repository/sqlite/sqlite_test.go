package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"figedit/internal/domain"
	"figedit/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err, "failed to create test repository")
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func revisionAt(path string, fig domain.Figure, at time.Time) domain.Revision {
	rev := repository.NewRevision(path, "text", fig, []byte(fig.String()))
	rev.SavedAt = at
	return rev
}

func TestAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)

	path := repository.NormalizePath("fig.txt")
	for i := int64(0); i < 3; i++ {
		rev := revisionAt("fig.txt", domain.NewFigure("Box", 10+i, 20), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Append(ctx, rev))
	}
	require.NoError(t, repo.Append(ctx, revisionAt("other.txt", domain.NewFigure("Other", 1, 1), base)))

	revs, err := repo.List(ctx, path, 0)
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, int64(12), revs[0].Figure.Width, "newest first")
	assert.Equal(t, int64(10), revs[2].Figure.Width)
	assert.Equal(t, base.Add(2*time.Minute), revs[0].SavedAt)
	assert.Equal(t, path, revs[0].Path)

	limited, err := repo.List(ctx, path, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLatest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Latest(ctx, "nothing.txt")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	now := time.Now().UTC()
	first := revisionAt("fig.json", domain.NewFigure("A", 1, 2), now)
	second := revisionAt("fig.json", domain.NewFigure("B", 3, 4), now.Add(time.Second))
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	latest, err := repo.Latest(ctx, second.Path)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, second.Figure, latest.Figure)
	assert.Equal(t, second.Digest, latest.Digest)
}

func TestAppendDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rev := revisionAt("fig.txt", domain.NewFigure("A", 1, 2), time.Now())
	require.NoError(t, repo.Append(ctx, rev))
	assert.Error(t, repo.Append(ctx, rev))
}

func TestPersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	rev := revisionAt("fig.txt", domain.NewFigure("Kept", 5, 6), time.Now())
	require.NoError(t, repo.Append(ctx, rev))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	latest, err := reopened.Latest(ctx, rev.Path)
	require.NoError(t, err)
	assert.Equal(t, domain.NewFigure("Kept", 5, 6), latest.Figure)
}
