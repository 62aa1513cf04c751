package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pairsync/pairsync/pkg/errors"
	"github.com/pairsync/pairsync/pkg/metasync"
)

// Filesystem stores each metadata key as one file inside a collection
// directory (the "displayname" and "color" files of a vdir collection).
// A missing file means the value is absent; a file holding only whitespace
// is normalized to absent on read.
type Filesystem struct {
	name string
	path string
}

// NewFilesystem creates a store rooted at the given collection directory.
// The directory is created lazily on the first write.
func NewFilesystem(name, path string) *Filesystem {
	return &Filesystem{name: name, path: path}
}

// Name identifies the storage instance.
func (f *Filesystem) Name() string {
	return f.name
}

// Path returns the collection directory.
func (f *Filesystem) Path() string {
	return f.path
}

// GetMeta reads the value for key from its file.
func (f *Filesystem) GetMeta(_ context.Context, key string) (metasync.Value, error) {
	if err := validateKey(key); err != nil {
		return metasync.Absent(), err
	}

	data, err := os.ReadFile(f.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return metasync.Absent(), nil
		}
		return metasync.Absent(), errors.WrapIO("read", f.keyPath(key), err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return metasync.Absent(), nil
	}
	return metasync.String(value), nil
}

// SetMeta writes the value for key. Absent values remove the file. Writes go
// through a temp file and rename so a crash never leaves a half-written
// value behind.
func (f *Filesystem) SetMeta(_ context.Context, key string, value metasync.Value) error {
	if err := validateKey(key); err != nil {
		return err
	}
	path := f.keyPath(key)

	if !value.Present() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.WrapIO("delete", path, err)
		}
		return nil
	}

	if err := os.MkdirAll(f.path, 0o700); err != nil {
		return errors.WrapIO("create", f.path, err)
	}

	tmp, err := os.CreateTemp(f.path, "."+key+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value.Raw() + "\n"); err != nil {
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

func (f *Filesystem) keyPath(key string) string {
	return filepath.Join(f.path, key)
}

// validateKey rejects keys that would name a file outside the collection
// directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return errors.NewValidationError("key", key, "metadata keys must not contain path separators")
	}
	return nil
}
