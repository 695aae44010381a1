package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sicko7947/storybook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()

	backend, err := OpenSQLiteBackend(filepath.Join(t.TempDir(), "storybook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	return backend
}

func TestOpenSQLiteBackend_RequiresPath(t *testing.T) {
	_, err := OpenSQLiteBackend("  ")
	assert.Error(t, err)
}

func TestSQLiteBackend_GetAbsent(t *testing.T) {
	backend := openTestSQLite(t)

	value, ok, err := backend.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSQLiteBackend_SetAndOverwrite(t *testing.T) {
	backend := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "k", "first"))
	require.NoError(t, backend.Set(ctx, "k", "second"))

	value, ok, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storybook.db")
	ctx := context.Background()

	backend, err := OpenSQLiteBackend(path)
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, storybook.StorageKey, `[{"id":7,"name":"Lea"}]`))
	require.NoError(t, backend.Close())

	reopened, err := OpenSQLiteBackend(path)
	require.NoError(t, err)
	defer reopened.Close()

	stories := storybook.NewStore(reopened).GetStories(ctx)
	require.Len(t, stories, 1)
	assert.Equal(t, int64(7), stories[0].ID)
	assert.Equal(t, "Lea", stories[0].Name)
}

func TestSQLiteBackend_ClosedHandle(t *testing.T) {
	var backend *SQLiteBackend

	_, _, err := backend.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, backend.Set(context.Background(), "k", "v"))
	assert.NoError(t, backend.Close())
}
