package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI sequences for error output. A nil provider
// prints without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code without printing.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case IsResourceExhausted(err):
		return ExitErrorResource
	case IsInvalidInput(err):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a human-readable message for err and
// returns the matching exit code.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sThe calculation exceeded the time limit after %s%s%s.%s\n", red, yellow, duration, red, reset)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sThe calculation was canceled by the user.%s\n", yellow, reset)
	case ExitErrorResource:
		fmt.Fprintf(out, "%sNot enough memory for this run: %v%s\n", red, err, reset)
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", red, err, reset)
	default:
		fmt.Fprintf(out, "%sThe calculation failed: %v%s\n", red, err, reset)
	}
	return code
}
