package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic failure.
	ExitErrorTimeout  = 2   // The run exceeded its timeout.
	ExitErrorMismatch = 3   // Two sign variants produced different digits.
	ExitErrorConfig   = 4   // Invalid flags, environment or config file.
	ExitErrorResource = 5   // Memory budget exceeded.
	ExitErrorCanceled = 130 // Canceled by SIGINT/SIGTERM.
)

// ConfigError represents a user configuration error, such as an invalid flag
// value or an unreadable config file.
type ConfigError struct {
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports an invalid input to one of the core operations
// (for example a non-positive digit count). It is returned before any
// worker starts.
type ValidationError struct {
	// Field is the name of the offending input.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// CalculationError encapsulates a failure during series evaluation or
// reduction while preserving the original cause.
type CalculationError struct {
	Cause error
}

// Error returns the message of the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the wrapped cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its configured limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// MemoryError represents resource exhaustion: the estimated memory needed
// for a run, or for a single series term, exceeds what is allowed.
type MemoryError struct {
	// Requested is the number of bytes the operation needs.
	Requested uint64
	// Available is the number of bytes the system reports as available
	// (0 when unknown).
	Available uint64
	// Limit is the configured memory limit in bytes (0 when unlimited).
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError wraps err with a formatted context message. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsInvalidInput reports whether err stems from invalid user input.
func IsInvalidInput(err error) bool {
	var ve ValidationError
	var ce ConfigError
	return errors.As(err, &ve) || errors.As(err, &ce)
}

// IsResourceExhausted reports whether err is a MemoryError.
func IsResourceExhausted(err error) bool {
	var me MemoryError
	return errors.As(err, &me)
}
