package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per calculator.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every calculator concurrently for cfg.Digits
// digits and returns one result per calculator, in input order. A failing
// calculator does not stop the others. The progress reporter runs on its
// own goroutine and has finished when ExecuteCalculations returns.
func ExecuteCalculations(ctx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, opts chudnovsky.Options, reporter ProgressReporter, out io.Writer) []CalculationResult {
	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	var g errgroup.Group
	for i, calc := range calculators {
		g.Go(func() error {
			start := time.Now()
			res, err := calc.Calculate(ctx, progressChan, i, cfg.Digits, opts)
			r := CalculationResult{Name: calc.Name(), Result: res, Duration: time.Since(start), Err: err}
			if err == nil {
				r.Digits, r.Exponent = res.Digits(cfg.Digits)
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

// AnalyzeComparisonResults orders results with successes first, fastest
// first, and returns the run's exit code. When several calculators ran, a
// comparison table is shown and every successful digit string must agree;
// a disagreement is reported as ExitErrorMismatch.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var best *CalculationResult
	var firstErr error
	var firstErrDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr, firstErrDuration = results[i].Err, results[i].Duration
			}
			continue
		}
		if best == nil {
			best = &results[i]
		}
	}

	multi := len(results) > 1
	if multi && !opts.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	if best == nil {
		if multi && !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No variant could complete the calculation.\n")
		}
		return presenter.HandleError(firstErr, firstErrDuration, out)
	}

	if mismatch := findMismatch(results, best); mismatch != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree at digit %d.\n",
			best.Name, mismatch.Name, firstDifference(best.Digits, mismatch.Digits)+1)
		return apperrors.ExitErrorMismatch
	}

	if multi && !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All variants agree.\n")
	}
	presenter.PresentResult(*best, opts, out)
	return apperrors.ExitSuccess
}

func findMismatch(results []CalculationResult, ref *CalculationResult) *CalculationResult {
	for i := range results {
		r := &results[i]
		if r.Err == nil && (r.Digits != ref.Digits || r.Exponent != ref.Exponent) {
			return r
		}
	}
	return nil
}

// firstDifference returns the index of the first differing byte of a and
// b, or the shorter length when one is a prefix of the other.
func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
