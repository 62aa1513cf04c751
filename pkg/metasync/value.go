// Package metasync implements three-state reconciliation of metadata between
// the two sides of a pair. For every key it compares the value on side A,
// the value on side B, and the value both sides last agreed on, and decides
// which side to propagate, or reports a conflict when both sides changed
// independently. The comparison is by value identity, so it needs no clocks
// and no versioning support from the storages.
package metasync

import "context"

// Value is a metadata value with an explicit absent state. The zero value is
// absent. A legitimately empty string is distinct from absence; storages that
// treat blank content as "no value" normalize before returning.
type Value struct {
	str     string
	present bool
}

// String returns a present Value holding s.
func String(s string) Value {
	return Value{str: s, present: true}
}

// Absent returns the distinguished absent Value.
func Absent() Value {
	return Value{}
}

// Present reports whether the value exists.
func (v Value) Present() bool {
	return v.present
}

// Raw returns the underlying string. It is empty for absent values;
// check Present to distinguish.
func (v Value) Raw() string {
	return v.str
}

// Equal reports structural equality: two absent values are equal, and two
// present values are equal iff their strings match.
func (v Value) Equal(o Value) bool {
	if v.present != o.present {
		return false
	}
	return !v.present || v.str == o.str
}

// Display renders the value for user-facing conflict messages.
func (v Value) Display() string {
	if !v.present {
		return "<absent>"
	}
	return v.str
}

// Status is the baseline: the value each key held when both sides last
// agreed. It is sparse: a key missing from the map means the agreed value
// was absent. The engine mutates it in place; persistence is the caller's
// concern.
type Status map[string]string

// Get returns the baseline value for key.
func (s Status) Get(key string) Value {
	if raw, ok := s[key]; ok {
		return String(raw)
	}
	return Absent()
}

// put records v as the agreed value for key, removing the entry when v is
// absent so the baseline stays sparse.
func (s Status) put(key string, v Value) {
	if v.present {
		s[key] = v.str
	} else {
		delete(s, key)
	}
}

// MetaStore is one side of a pair: a capability that reads and writes one
// metadata value per key. Implementations must be safe for use by a single
// job at a time; they may return transport or authentication errors, which
// the engine propagates unchanged.
type MetaStore interface {
	// Name identifies the storage instance in logs and error messages.
	Name() string

	// GetMeta reads the value for key. A missing key yields Absent, not an
	// error.
	GetMeta(ctx context.Context, key string) (Value, error)

	// SetMeta writes the value for key. Writing Absent deletes the key.
	SetMeta(ctx context.Context, key string, value Value) error
}
