// Package apperrors defines structured application error types, separating
// invalid input, resource exhaustion and calculation failures so that callers
// can map each class to its own exit status.
//
// All error types that carry a cause implement Unwrap so errors.Is and
// errors.As see through them. Wrapping elsewhere uses fmt.Errorf with %w.
package apperrors
