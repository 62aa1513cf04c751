// Package storage provides metadata store implementations for the sides of a
// pair. Each store implements metasync.MetaStore: a per-key read/write
// capability with an explicit absent state. A store instance belongs to
// exactly one job at a time.
package storage

import (
	"github.com/pairsync/pairsync/pkg/errors"
	"github.com/pairsync/pairsync/pkg/metasync"
)

// Type identifies a storage backend in configuration.
type Type string

// Supported storage backends.
const (
	TypeMemory     Type = "memory"
	TypeFilesystem Type = "filesystem"
)

// Config describes one named storage instance from the configuration file.
type Config struct {
	Name string `yaml:"-"`
	Type Type   `yaml:"type"`

	// Path is the collection directory for filesystem storages.
	Path string `yaml:"path"`
}

// New constructs a store from its configuration.
func New(cfg Config) (metasync.MetaStore, error) {
	switch cfg.Type {
	case TypeMemory:
		return NewMemory(cfg.Name), nil
	case TypeFilesystem:
		if cfg.Path == "" {
			return nil, errors.NewValidationError("path", cfg.Path, "filesystem storage requires a path")
		}
		return NewFilesystem(cfg.Name, cfg.Path), nil
	default:
		return nil, errors.NewValidationError("type", string(cfg.Type), "unknown storage type")
	}
}
