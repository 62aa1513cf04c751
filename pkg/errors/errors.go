// Package errors provides custom error types for the pairsync system.
// These errors enable programmatic error checking at the job boundary and
// carry enough structure to format useful user-facing messages.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the pairsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates that both sides of a pair changed independently
	ErrConflict = errors.New("sync conflict")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only storage
	ErrReadOnly = errors.New("read only")
)

// KeyConflict describes a single conflicting key with both observed values.
// Values are rendered strings; an absent value renders as "<absent>".
type KeyConflict struct {
	Key   string
	SideA string
	SideB string
}

// ConflictError reports keys that changed on both sides of a pair since the
// last reconciliation and could not be resolved by policy. The affected keys
// were left untouched on both sides and in the baseline.
type ConflictError struct {
	Pair      string
	Conflicts []KeyConflict
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	keys := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		keys[i] = c.Key
	}
	if e.Pair != "" {
		return fmt.Sprintf("conflicting keys for %s: %s", e.Pair, strings.Join(keys, ", "))
	}
	return fmt.Sprintf("conflicting keys: %s", strings.Join(keys, ", "))
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(pair string, conflicts []KeyConflict) *ConflictError {
	return &ConflictError{Pair: pair, Conflicts: conflicts}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	Name     string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Name)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Section string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(section, message string, err error) *ConfigError {
	return &ConfigError{Section: section, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// StorageError represents an error from a value store capability.
// The reconciliation engine never catches these; they propagate to the
// enclosing job.
type StorageError struct {
	Storage   string // instance name of the storage (side)
	Operation string // "get" or "set"
	Key       string
	Err       error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: failed to %s %q: %v", e.Storage, e.Operation, e.Key, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(storage, operation, key string, err error) *StorageError {
	return &StorageError{Storage: storage, Operation: operation, Key: key, Err: err}
}

// CommandError is a user-facing error carrying a short summary plus an
// optional itemized list of underlying problems. The CLI error boundary
// formats it without a wrapping chain.
type CommandError struct {
	Msg      string
	Problems []string
}

// Error implements the error interface
func (e *CommandError) Error() string {
	return e.Format()
}

// Format renders the summary and problem list for terminal output.
func (e *CommandError) Format() string {
	msg := strings.TrimRight(e.Msg, ".:")
	switch len(e.Problems) {
	case 0:
		return msg
	case 1:
		return msg + ": " + e.Problems[0]
	default:
		return msg + ":\n  - " + strings.Join(e.Problems, "\n  - ")
	}
}

// NewCommandError creates a new CommandError
func NewCommandError(msg string, problems ...string) *CommandError {
	return &CommandError{Msg: msg, Problems: problems}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a sync conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapConfig wraps an error as a ConfigError
func WrapConfig(section string, err error) error {
	if err == nil {
		return nil
	}
	return NewConfigError(section, err.Error(), err)
}
