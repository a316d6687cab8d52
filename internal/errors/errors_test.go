package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid value %d for flag %s", -3, "--workers")
	if err.Error() != "invalid value -3 for flag --workers" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var ce ConfigError
	if !errors.As(err, &ce) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "digits", Message: "must be positive, got 0"}
	want := `validation error for "digits": must be positive, got 0`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !IsInvalidInput(fmt.Errorf("plan: %w", err)) {
		t.Error("IsInvalidInput should see through wrapping")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cause   error
		checkIs error
	}{
		{name: "plain cause", cause: errors.New("reduce: zero sum")},
		{name: "context cause", cause: context.Canceled, checkIs: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Cause: tt.cause}
			if err.Error() != tt.cause.Error() {
				t.Errorf("expected %q, got %q", tt.cause.Error(), err.Error())
			}
			if err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "chudnovsky", Limit: 30 * time.Second}
	if err.Error() != `operation "chudnovsky" timed out after 30s` {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestMemoryError(t *testing.T) {
	t.Parallel()
	err := MemoryError{Requested: 2048, Available: 1024, Limit: 512}
	for _, want := range []string{"2048", "1024", "512"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("message %q should contain %s", err.Error(), want)
		}
	}
	if !IsResourceExhausted(fmt.Errorf("worker 3: %w", err)) {
		t.Error("IsResourceExhausted should see through wrapping")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := errors.New("base")
	wrapped := WrapError(base, "evaluating range %d", 2)
	if wrapped.Error() != "evaluating range 2: base" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("worker: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"memory", MemoryError{Requested: 1}, ExitErrorResource},
		{"validation", ValidationError{Field: "workers", Message: "must be >= 1"}, ExitErrorConfig},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"nil error", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "time limit"},
		{"canceled", context.Canceled, ExitErrorCanceled, "canceled"},
		{"memory", MemoryError{Requested: 10}, ExitErrorResource, "Not enough memory"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, time.Second, &buf, nil)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}
