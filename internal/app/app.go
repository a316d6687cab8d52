// Package app wires configuration, calculators and presentation into the
// picalc commands.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/picalc/internal/calibration"
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/ui"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Application represents the picalc application instance.
type Application struct {
	Factory   chudnovsky.CalculatorFactory
	ErrWriter io.Writer
}

var _ cli.Runner = (*Application)(nil)

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f chudnovsky.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates an Application that writes diagnostics and logs to errWriter.
func New(errWriter io.Writer, opts ...AppOption) *Application {
	a := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(a)
	}
	if a.Factory == nil {
		a.Factory = chudnovsky.NewDefaultFactory()
	}
	return a
}

// Run parses args, runs the selected command and returns the exit code.
func (a *Application) Run(ctx context.Context, args []string, out io.Writer) int {
	return cli.Execute(ctx, a, BuildInfo(), args, out, a.ErrWriter)
}

// BuildInfo returns the version information printed by `picalc version`.
func BuildInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: Version, Commit: Commit, Date: BuildDate}
}

// RunCalibrate times the default variant for several worker counts and
// saves the fastest to the calibration profile.
func (a *Application) RunCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) int {
	log := a.setup(cfg, uuid.NewString())

	variant := cfg.Variant
	if variant == config.VariantAll {
		variant = config.DefaultVariant
	}
	calc, err := a.Factory.Get(variant)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorConfig
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := calibration.SettingsFromConfig(cfg)
	settings.Logger = log
	return calibration.RunCalibration(ctx, out, calc, settings, cli.CLIProgressReporter{})
}

// setup applies the log level and color settings of cfg and returns the
// run's logger.
func (a *Application) setup(cfg config.AppConfig, runID string) *logging.ZerologAdapter {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(cfg.NoColor)
	return logging.NewLogger(a.ErrWriter, "picalc").With(logging.String("run_id", runID))
}

// applyCalibrationProfile fills an automatic worker count from a valid
// cached profile.
func applyCalibrationProfile(cfg config.AppConfig, log logging.Logger) config.AppConfig {
	if cfg.Workers != 0 {
		return cfg
	}
	if workers, ok := calibration.LoadCachedWorkers(cfg.CalibrationProfile); ok {
		log.Debug("using calibrated worker count", logging.Int("workers", workers))
		cfg.Workers = min(workers, cfg.MaxWorkers)
	}
	return cfg
}
