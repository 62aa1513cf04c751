package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		flags    *Flags
		expected string
	}{
		{
			name:     "default level when no flags set",
			flags:    &Flags{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			flags:    &Flags{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			flags:    &Flags{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log level overrides verbose",
			flags:    &Flags{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "invalid log level falls back to info",
			flags:    &Flags{LogLevel: "blorp"},
			expected: "info",
		},
		{
			name:     "verbose and quiet together pick quiet",
			flags:    &Flags{Verbose: true, Quiet: true},
			expected: "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.flags); got != tt.expected {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.expected)
			}
		})
	}
}
