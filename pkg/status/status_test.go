package status_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairsync/pairsync/pkg/metasync"
	"github.com/pairsync/pairsync/pkg/status"
)

func TestFileStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := status.NewFileStore(t.TempDir())

	st := metasync.Status{
		"displayname": "Calendar",
		"color":       "#ff0000",
	}
	require.NoError(t, store.Save(ctx, "my_pair", st))

	got, err := store.Load(ctx, "my_pair")
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestFileStoreMissingIsEmpty(t *testing.T) {
	store := status.NewFileStore(t.TempDir())

	got, err := store.Load(context.Background(), "never_synced")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileStoreSlashInNameMapsToSubdir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := status.NewFileStore(dir)

	require.NoError(t, store.Save(ctx, "bob/calendar", metasync.Status{"displayname": "Work"}))

	_, err := os.Stat(filepath.Join(dir, "bob", "calendar.yaml"))
	require.NoError(t, err)

	got, err := store.Load(ctx, "bob/calendar")
	require.NoError(t, err)
	assert.Equal(t, "Work", got["displayname"])
}

func TestFileStorePermissions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := status.NewFileStore(dir)

	require.NoError(t, store.Save(ctx, "my_pair", metasync.Status{"color": "#00ff00"}))

	info, err := os.Stat(filepath.Join(dir, "my_pair.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := status.NewFileStore(t.TempDir())

	require.NoError(t, store.Save(ctx, "my_pair", metasync.Status{"displayname": "Old", "color": "#ff0000"}))
	require.NoError(t, store.Save(ctx, "my_pair", metasync.Status{"displayname": "New"}))

	got, err := store.Load(ctx, "my_pair")
	require.NoError(t, err)
	assert.Equal(t, metasync.Status{"displayname": "New"}, got)
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := status.NewFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "my_pair.yaml"), []byte("{not yaml"), 0o600))

	_, err := store.Load(ctx, "my_pair")
	assert.Error(t, err)
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, err := status.NewSQLiteStore(filepath.Join(t.TempDir(), "status.db"))
	require.NoError(t, err)
	defer store.Close()

	st := metasync.Status{
		"displayname": "Calendar",
		"color":       "#ff0000",
	}
	require.NoError(t, store.Save(ctx, "my_pair", st))

	got, err := store.Load(ctx, "my_pair")
	require.NoError(t, err)
	assert.Equal(t, st, got)

	// Baselines are isolated per name.
	other, err := store.Load(ctx, "other_pair")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := status.NewSQLiteStore(filepath.Join(t.TempDir(), "status.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(ctx, "my_pair", metasync.Status{"displayname": "Old", "color": "#ff0000"}))
	require.NoError(t, store.Save(ctx, "my_pair", metasync.Status{"displayname": "New"}))

	got, err := store.Load(ctx, "my_pair")
	require.NoError(t, err)
	assert.Equal(t, metasync.Status{"displayname": "New"}, got)
}
