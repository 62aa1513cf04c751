package storage

import (
	"context"
	"sync"

	"github.com/pairsync/pairsync/pkg/metasync"
)

// Memory is an in-memory metadata store. It backs tests and acts as a
// scratch side for dry runs; contents are lost when the process exits.
type Memory struct {
	name string

	mu   sync.RWMutex
	meta map[string]string
}

// NewMemory creates an empty in-memory store with the given instance name.
func NewMemory(name string) *Memory {
	return &Memory{
		name: name,
		meta: make(map[string]string),
	}
}

// Name identifies the storage instance.
func (m *Memory) Name() string {
	return m.name
}

// GetMeta reads the value for key.
func (m *Memory) GetMeta(_ context.Context, key string) (metasync.Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if raw, ok := m.meta[key]; ok {
		return metasync.String(raw), nil
	}
	return metasync.Absent(), nil
}

// SetMeta writes the value for key; an absent value deletes the entry.
func (m *Memory) SetMeta(_ context.Context, key string, value metasync.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value.Present() {
		m.meta[key] = value.Raw()
	} else {
		delete(m.meta, key)
	}
	return nil
}
