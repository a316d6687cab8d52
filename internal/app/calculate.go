package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/sysmon"
	"github.com/agbru/picalc/internal/tui"
	"github.com/agbru/picalc/internal/ui"
)

// RunCalculate computes π as configured by cfg and returns the exit code.
func (a *Application) RunCalculate(ctx context.Context, cfg config.AppConfig, out io.Writer) int {
	runID := uuid.NewString()
	log := a.setup(cfg, runID)

	cfg = applyCalibrationProfile(cfg, log)
	cfg.Workers = chudnovsky.ResolveWorkers(cfg.Workers, cfg.MaxWorkers)

	calculators := orchestration.GetCalculatorsToRun(cfg, a.Factory)
	if len(calculators) == 0 {
		fmt.Fprintf(a.ErrWriter, "%sError:%s unknown variant %q\n", ui.ColorRed(), ui.ColorReset(), cfg.Variant)
		return apperrors.ExitErrorConfig
	}
	plan, err := chudnovsky.Plan(cfg.Digits)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}

	recorder := metrics.NewRunMetrics()
	memStats := metrics.NewMemoryCollector()
	opts := cfg.ToCalculationOptions()
	opts.Logger = log
	opts.Recorder = recorder
	if avail, err := sysmon.AvailableMemory(); err == nil {
		opts.AvailableMemory = avail
	} else {
		log.Debug("available memory unknown", logging.Err(err))
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	gc := memory.NewGCController(cfg.GCMode, uint64(cfg.Digits))
	gc.SetLogger(log.Zerolog())

	log.Debug("run starting",
		logging.Int("digits", cfg.Digits),
		logging.Int("workers", cfg.Workers),
		logging.String("variant", cfg.Variant))

	if cfg.TUI {
		gc.Begin()
		code := tui.Run(ctx, calculators, cfg, opts, Version)
		gc.End()
		return a.finish(cfg, recorder, memStats, log, code)
	}

	if !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, plan, cfg.Workers, out)
		cli.PrintExecutionMode(calculators, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	cpuBefore, cpuErr := sysmon.ProcessCPUTime()
	start := time.Now()
	gc.Begin()
	results := orchestration.ExecuteCalculations(ctx, calculators, cfg, opts, reporter, progressOut)
	gc.End()
	wall := time.Since(start)

	presOpts := orchestration.PresentationOptions{
		Digits:     cfg.Digits,
		LastDigits: cfg.LastDigits,
		ShowAll:    cfg.ShowAll,
		Verbose:    cfg.Verbose,
		Details:    cfg.Details,
		Quiet:      cfg.Quiet,
	}
	code := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, out)

	if code == apperrors.ExitSuccess && cfg.OutputFile != "" {
		if best := findBestResult(results); best != nil {
			header := cli.FileHeader{RunID: runID, Generated: time.Now()}
			if err := cli.WriteResultToFile(cfg.OutputFile, *best, header); err != nil {
				fmt.Fprintf(a.ErrWriter, "%sError saving result:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
				return apperrors.ExitErrorGeneric
			}
			if !cfg.Quiet {
				fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
					ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
			}
		}
	}

	if cfg.Details && !cfg.Quiet {
		details := cli.RunDetails{Wall: wall, Memory: memStats.Snapshot()}
		if cpuErr == nil {
			if cpuAfter, err := sysmon.ProcessCPUTime(); err == nil {
				used := cpuAfter.Sub(cpuBefore)
				details.CPU = &used
			}
		}
		if gc.Active() {
			stats := gc.Stats()
			details.GC = &stats
		}
		cli.DisplayRunDetails(out, details)
	}

	return a.finish(cfg, recorder, memStats, log, code)
}

// finish records final memory figures, writes the metrics file and logs the
// outcome.
func (a *Application) finish(cfg config.AppConfig, recorder *metrics.RunMetrics, memStats *metrics.MemoryCollector, log logging.Logger, code int) int {
	recorder.ObserveMemory(memStats.Snapshot())
	if cfg.MetricsFile != "" {
		if err := recorder.WriteFile(cfg.MetricsFile); err != nil {
			log.Error("writing metrics file", err, logging.String("path", cfg.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	log.Debug("run finished", logging.Int("exit_code", code))
	return code
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil || results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best
}
