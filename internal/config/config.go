// Package config defines the application configuration, its command-line
// flags, and the layered resolution from flags, PICALC_ environment
// variables and a TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/agbru/picalc/internal/chudnovsky"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/memory"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PICALC_"

	// VariantAll runs every registered calculator and compares them.
	VariantAll = "all"

	DefaultVariant    = "parity"
	DefaultTimeout    = 5 * time.Minute
	DefaultLastDigits = 50
	DefaultGCMode     = string(memory.GCModeAuto)
	DefaultLogLevel   = "info"
)

// AppConfig holds every setting of a run.
type AppConfig struct {
	Digits     int
	Workers    int
	MaxWorkers int
	Variant    string
	Timeout    time.Duration

	LastDigits int
	ShowAll    bool
	Quiet      bool
	Verbose    bool
	Details    bool
	OutputFile string

	MemoryLimit string
	GCMode      string
	MetricsFile string
	LogLevel    string
	NoColor     bool
	TUI         bool

	Calibrate          bool
	CalibrationProfile string
	ConfigFile         string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Digits:     chudnovsky.DefaultDigits,
		MaxWorkers: chudnovsky.DefaultMaxWorkers,
		Variant:    DefaultVariant,
		Timeout:    DefaultTimeout,
		LastDigits: DefaultLastDigits,
		GCMode:     DefaultGCMode,
		LogLevel:   DefaultLogLevel,
	}
}

// BindFlags registers the run flags on fs, storing into cfg. The current
// values of cfg are the flag defaults.
func BindFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.IntVarP(&cfg.Digits, "digits", "d", cfg.Digits, "number of significant digits of π to compute")
	fs.IntVarP(&cfg.Workers, "workers", "t", cfg.Workers, "number of parallel workers (0 = one per available CPU)")
	fs.IntVar(&cfg.MaxWorkers, "max-workers", cfg.MaxWorkers, "upper bound for the automatic worker count")
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant, "series sign variant: parity, negbase or all")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum run time")
	fs.IntVar(&cfg.LastDigits, "last-digits", cfg.LastDigits, "print only this many trailing digits of long results")
	fs.BoolVar(&cfg.ShowAll, "all", cfg.ShowAll, "print every digit")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print only the digits")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose output and debug logging")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "print timing, CPU and memory details")
	fs.StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "write the digits to this file")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", cfg.MemoryLimit, "refuse runs estimated above this size (e.g. 2GiB)")
	fs.StringVar(&cfg.GCMode, "gc-mode", cfg.GCMode, "garbage collector control: auto, aggressive or disabled")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus text metrics to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "show the interactive dashboard")
	fs.BoolVar(&cfg.Calibrate, "calibrate", cfg.Calibrate, "measure worker counts and save the fastest")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", cfg.CalibrationProfile, "calibration profile path")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "TOML configuration file")
}

// Resolve fills every setting whose flag was not given on the command line,
// first from the TOML file named by cfg.ConfigFile, then from the
// environment, and validates the result.
func Resolve(cfg *AppConfig, fs *pflag.FlagSet) error {
	if cfg.ConfigFile != "" {
		if err := applyFile(cfg, fs, cfg.ConfigFile); err != nil {
			return err
		}
	}
	if err := applyEnvOverrides(cfg, fs); err != nil {
		return err
	}
	if cfg.Verbose && !flagChanged(fs, "log-level") {
		cfg.LogLevel = "debug"
	}
	return cfg.Validate()
}

// Validate checks every setting and returns a ConfigError for the first
// invalid one.
func (c AppConfig) Validate() error {
	switch {
	case c.Digits <= 0:
		return apperrors.NewConfigError("--digits must be positive, got %d", c.Digits)
	case c.Digits > chudnovsky.MaxDigits:
		return apperrors.NewConfigError("--digits must be at most %d, got %d", chudnovsky.MaxDigits, c.Digits)
	case c.Workers < 0:
		return apperrors.NewConfigError("--workers must be at least 1 (or 0 for automatic), got %d", c.Workers)
	case c.MaxWorkers < 1:
		return apperrors.NewConfigError("--max-workers must be at least 1, got %d", c.MaxWorkers)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	case c.LastDigits < 0:
		return apperrors.NewConfigError("--last-digits must not be negative, got %d", c.LastDigits)
	case !memory.ValidGCMode(c.GCMode):
		return apperrors.NewConfigError("--gc-mode must be auto, aggressive or disabled, got %q", c.GCMode)
	}
	switch c.Variant {
	case VariantAll, chudnovsky.SignByParity.String(), chudnovsky.SignByNegativeBase.String():
	default:
		return apperrors.NewConfigError("--variant must be parity, negbase or all, got %q", c.Variant)
	}
	if _, err := memory.ParseLimit(c.MemoryLimit); err != nil {
		return apperrors.NewConfigError("--memory-limit: %v", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("--log-level: %v", err)
	}
	return nil
}

// MemoryLimitBytes returns the parsed memory limit, 0 when unset.
func (c AppConfig) MemoryLimitBytes() uint64 {
	n, _ := memory.ParseLimit(c.MemoryLimit)
	return n
}

// ToCalculationOptions returns the calculator options implied by c.
func (c AppConfig) ToCalculationOptions() chudnovsky.Options {
	return chudnovsky.Options{
		Workers:     c.Workers,
		MaxWorkers:  c.MaxWorkers,
		MemoryLimit: c.MemoryLimitBytes(),
	}
}

func (c AppConfig) String() string {
	return fmt.Sprintf("digits=%d workers=%d variant=%s timeout=%s", c.Digits, c.Workers, c.Variant, c.Timeout)
}

func flagChanged(fs *pflag.FlagSet, names ...string) bool {
	if fs == nil {
		return false
	}
	for _, n := range names {
		if f := fs.Lookup(n); f != nil && f.Changed {
			return true
		}
	}
	return false
}
