package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/ui"
)

// Settings configure a calibration run.
type Settings struct {
	Digits       int
	WorkerCounts []int
	ProfilePath  string
	Logger       logging.Logger
}

// SettingsFromConfig derives calibration settings from the run configuration.
func SettingsFromConfig(cfg config.AppConfig) Settings {
	return Settings{
		Digits:       max(cfg.Digits, MinCalibrationDigits),
		WorkerCounts: GenerateWorkerCounts(chudnovsky.ResolveWorkers(0, cfg.MaxWorkers), cfg.MaxWorkers),
		ProfilePath:  cfg.CalibrationProfile,
	}
}

type calibrationResult struct {
	Workers  int
	Duration time.Duration
	Err      error
}

// RunCalibration times calc once per worker count, prints a summary, saves
// the fastest count to the profile and returns the exit code.
func RunCalibration(ctx context.Context, out io.Writer, calc chudnovsky.Calculator, s Settings, reporter orchestration.ProgressReporter) int {
	log := s.Logger
	if log == nil {
		log = logging.Nop()
	}
	fmt.Fprintf(out, "--- Calibration ---\n")
	fmt.Fprintf(out, "Timing %s%d%s digits with the %s variant for worker counts %v.\n",
		ui.ColorCyan(), s.Digits, ui.ColorReset(), calc.Name(), s.WorkerCounts)

	cfg := config.Default()
	cfg.Digits = s.Digits
	start := time.Now()

	results := make([]calibrationResult, 0, len(s.WorkerCounts))
	best := -1
	for _, n := range s.WorkerCounts {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprintf(out, "\nWorkers: %d\n", n)
		run := orchestration.ExecuteCalculations(ctx, []chudnovsky.Calculator{calc}, cfg,
			chudnovsky.Options{Workers: n, Logger: s.Logger}, reporter, out)[0]
		res := calibrationResult{Workers: n, Duration: run.Duration, Err: run.Err}
		results = append(results, res)
		log.Debug("calibration trial",
			logging.Int("workers", n),
			logging.Duration("elapsed", run.Duration),
			logging.Err(run.Err))
		if res.Err == nil && (best < 0 || res.Duration < results[best].Duration) {
			best = len(results) - 1
		}
	}

	if best < 0 {
		err := ctx.Err()
		if len(results) > 0 && results[0].Err != nil {
			err = results[0].Err
		}
		if err == nil {
			err = fmt.Errorf("no worker count to calibrate")
		}
		return apperrors.HandleCalculationError(err, time.Since(start), out, ui.ColorProvider{})
	}

	printCalibrationResults(out, results, results[best].Workers)

	profile := NewProfile()
	profile.OptimalWorkers = results[best].Workers
	profile.CalibrationDigits = s.Digits
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	path := s.ProfilePath
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "%sCould not save the calibration profile: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "\n%sOptimal worker count: %d%s (saved to %s)\n",
		ui.ColorGreen(), profile.OptimalWorkers, ui.ColorReset(), path)
	return apperrors.ExitSuccess
}
