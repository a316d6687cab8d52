package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/progress"
)

// CalculationResult is the outcome of one calculator run as seen by the
// presentation layer.
type CalculationResult struct {
	// Name is the calculator name, e.g. "parity".
	Name string
	// Result is nil if the run failed.
	Result *chudnovsky.Result
	// Digits are the requested significant digits without a decimal point.
	Digits string
	// Exponent places the decimal point: the value is 0.<Digits> × 10^Exponent.
	Exponent int
	Duration time.Duration
	Err      error
}

// PresentationOptions configures how a result is shown.
type PresentationOptions struct {
	Digits     int
	LastDigits int
	ShowAll    bool
	Verbose    bool
	Details    bool
	Quiet      bool
}

// ProgressReporter displays progress updates until progressChan is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel and displays nothing.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results and errors.
type ResultPresenter interface {
	// PresentComparisonTable shows one row per calculator.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult shows the digits of a successful run.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
	// HandleError prints err and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
