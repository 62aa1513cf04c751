package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairsync/pairsync/pkg/metasync"
	"github.com/pairsync/pairsync/pkg/storage"
)

func TestNew(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		s, err := storage.New(storage.Config{Name: "scratch", Type: storage.TypeMemory})
		require.NoError(t, err)
		assert.Equal(t, "scratch", s.Name())
	})

	t.Run("filesystem", func(t *testing.T) {
		s, err := storage.New(storage.Config{
			Name: "local",
			Type: storage.TypeFilesystem,
			Path: t.TempDir(),
		})
		require.NoError(t, err)
		assert.Equal(t, "local", s.Name())
	})

	t.Run("filesystem requires path", func(t *testing.T) {
		_, err := storage.New(storage.Config{Name: "local", Type: storage.TypeFilesystem})
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := storage.New(storage.Config{Name: "x", Type: "carddav"})
		assert.Error(t, err)
	})
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := storage.NewMemory("side_a")

	v, err := m.GetMeta(ctx, "displayname")
	require.NoError(t, err)
	assert.False(t, v.Present())

	require.NoError(t, m.SetMeta(ctx, "displayname", metasync.String("Calendar")))
	v, err = m.GetMeta(ctx, "displayname")
	require.NoError(t, err)
	assert.Equal(t, metasync.String("Calendar"), v)

	require.NoError(t, m.SetMeta(ctx, "displayname", metasync.Absent()))
	v, err = m.GetMeta(ctx, "displayname")
	require.NoError(t, err)
	assert.False(t, v.Present())
}

func TestFilesystemRoundtrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := storage.NewFilesystem("local", filepath.Join(dir, "collection"))

	v, err := fs.GetMeta(ctx, "displayname")
	require.NoError(t, err)
	assert.False(t, v.Present())

	require.NoError(t, fs.SetMeta(ctx, "displayname", metasync.String("Calendar")))
	v, err = fs.GetMeta(ctx, "displayname")
	require.NoError(t, err)
	assert.Equal(t, metasync.String("Calendar"), v)

	// The key lives in its own file, trailing newline included.
	data, err := os.ReadFile(filepath.Join(dir, "collection", "displayname"))
	require.NoError(t, err)
	assert.Equal(t, "Calendar\n", string(data))
}

func TestFilesystemDelete(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewFilesystem("local", t.TempDir())

	require.NoError(t, fs.SetMeta(ctx, "color", metasync.String("#ff0000")))
	require.NoError(t, fs.SetMeta(ctx, "color", metasync.Absent()))

	v, err := fs.GetMeta(ctx, "color")
	require.NoError(t, err)
	assert.False(t, v.Present())

	// Deleting an already absent key is not an error.
	require.NoError(t, fs.SetMeta(ctx, "color", metasync.Absent()))
}

func TestFilesystemRejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := storage.NewFilesystem("local", filepath.Join(dir, "collection"))

	for _, key := range []string{"", ".", "..", "a/b", "../escape", `a\b`} {
		_, err := fs.GetMeta(ctx, key)
		assert.Error(t, err, "GetMeta key %q", key)

		err = fs.SetMeta(ctx, key, metasync.String("x"))
		assert.Error(t, err, "SetMeta key %q", key)
	}

	// Nothing may appear outside the collection directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFilesystemNormalizesWhitespace(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := storage.NewFilesystem("local", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "displayname"), []byte("  Calendar \n"), 0o600))
	v, err := fs.GetMeta(ctx, "displayname")
	require.NoError(t, err)
	assert.Equal(t, metasync.String("Calendar"), v)

	// A file holding only whitespace reads as absent, not as empty string.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "color"), []byte(" \n\t\n"), 0o600))
	v, err = fs.GetMeta(ctx, "color")
	require.NoError(t, err)
	assert.False(t, v.Present())
}
