package status

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/pairsync/pairsync/pkg/errors"
	"github.com/pairsync/pairsync/pkg/metasync"
)

// Permissions for status files and directories. Baselines can reveal
// metadata of private collections, so they are owner-only.
const (
	filePermissions = 0o600
	dirPermissions  = 0o700
)

// FileStore keeps one YAML snapshot per status name under a base directory.
// A name containing "/" maps to a subdirectory, so "bob/calendar" lands in
// <dir>/bob/calendar.yaml.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the snapshot for name, returning an empty baseline when no
// snapshot exists yet.
func (s *FileStore) Load(_ context.Context, name string) (metasync.Status, error) {
	path := s.statusPath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(metasync.Status), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return restore(snap), nil
}

// Save writes the snapshot for name atomically: the YAML is written to a
// temp file in the same directory and renamed into place.
func (s *FileStore) Save(_ context.Context, name string, st metasync.Status) error {
	path := s.statusPath(name)

	data, err := yaml.Marshal(snapshot(st))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".status-*.yaml")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(filePermissions); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Close implements Store; file stores hold no open resources.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) statusPath(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name)+".yaml")
}
