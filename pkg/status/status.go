// Package status persists the reconciliation baseline between runs. The
// engine owns the in-memory baseline; this package only loads it before a
// job and flushes it afterwards. Two backends are provided: one YAML file
// per status name, and a single sqlite database holding every pair.
package status

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/pairsync/pairsync/pkg/metasync"
)

// Snapshot is the on-disk form of a baseline.
type Snapshot struct {
	// GeneratedAt records when the snapshot was written.
	GeneratedAt utc.Time `yaml:"generated_at"`

	// Meta maps each key to the value both sides last agreed on. Absent
	// values are not stored.
	Meta map[string]string `yaml:"meta"`
}

// Store loads and saves baselines. A status name identifies one pair (or
// one pair/collection); loading a name that was never saved yields an empty
// baseline, not an error.
type Store interface {
	// Load returns the baseline for name.
	Load(ctx context.Context, name string) (metasync.Status, error)

	// Save persists the baseline for name.
	Save(ctx context.Context, name string, st metasync.Status) error

	// Close releases any underlying resources.
	Close() error
}

// snapshot converts a live baseline into its persisted form.
func snapshot(st metasync.Status) Snapshot {
	meta := make(map[string]string, len(st))
	for k, v := range st {
		meta[k] = v
	}
	return Snapshot{
		GeneratedAt: utc.Now(),
		Meta:        meta,
	}
}

// restore converts a persisted snapshot back into a live baseline.
func restore(snap Snapshot) metasync.Status {
	st := make(metasync.Status, len(snap.Meta))
	for k, v := range snap.Meta {
		st[k] = v
	}
	return st
}
