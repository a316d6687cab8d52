package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/ui"
)

// CLIProgressReporter shows progress with a spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results as colorized terminal text.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per variant. Padding is computed
// on the raw text so color sequences do not break alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW := len("Variant"), len("Duration")
	for _, r := range results {
		nameW = max(nameW, len(r.Name))
		durW = max(durW, len(tableDuration(r.Duration)))
	}

	u, reset := ui.ColorUnderline(), ui.ColorReset()
	fmt.Fprintf(out, "%sVariant%s%s   %sDuration%s%s   %sStatus%s\n",
		u, reset, pad(nameW-len("Variant")),
		u, reset, pad(durW-len("Duration")),
		u, reset)

	for _, r := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), reset)
		if r.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), r.Err, reset)
		}
		d := tableDuration(r.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), r.Name, reset, pad(nameW-len(r.Name)),
			ui.ColorYellow(), d, reset, pad(durW-len(d)),
			status)
	}
}

// PresentResult prints the digits, or only the digits in quiet mode.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result, opts)
		return
	}
	DisplayResult(result, opts, out)
}

// HandleError prints err with the active theme and returns the exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ColorProvider{})
}

func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
