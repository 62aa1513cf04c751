package metasync

import (
	"fmt"
	"strings"
)

// Policy decides the winning side when both sides changed a key
// independently. It is stateless and evaluated per conflicting key.
type Policy string

// Built-in conflict resolution policies.
const (
	// PolicyNone surfaces conflicts to the caller and makes no changes.
	PolicyNone Policy = ""

	// PolicyAWins propagates side A's value on conflict.
	PolicyAWins Policy = "a wins"

	// PolicyBWins propagates side B's value on conflict.
	PolicyBWins Policy = "b wins"
)

// ParsePolicy parses a conflict_resolution config string. The empty string
// means no policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PolicyNone, nil
	case "a wins":
		return PolicyAWins, nil
	case "b wins":
		return PolicyBWins, nil
	default:
		return PolicyNone, fmt.Errorf("invalid conflict_resolution %q, must be \"a wins\" or \"b wins\"", s)
	}
}

// resolve picks the winning value for a conflict, or reports that the policy
// does not resolve conflicts.
func (p Policy) resolve(a, b Value) (Value, bool) {
	switch p {
	case PolicyAWins:
		return a, true
	case PolicyBWins:
		return b, true
	default:
		return Absent(), false
	}
}
