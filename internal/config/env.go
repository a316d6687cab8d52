package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// override maps one setting to its environment key (without EnvPrefix),
// its TOML key, and the flag that takes precedence over both.
type override struct {
	envKey  string
	fileKey string
	flag    string
	apply   func(*AppConfig, string) error
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		b, ok := parseBool(v)
		if !ok {
			return fmt.Errorf("not a boolean: %q", v)
		}
		*dst(c) = b
		return nil
	}
}

func stringSetter(dst func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, v string) error {
		*dst(c) = v
		return nil
	}
}

// overrides lists every setting that can come from the environment or a
// config file.
var overrides = []override{
	{"DIGITS", "digits", "digits", intSetter(func(c *AppConfig) *int { return &c.Digits })},
	{"WORKERS", "workers", "workers", intSetter(func(c *AppConfig) *int { return &c.Workers })},
	{"MAX_WORKERS", "max_workers", "max-workers", intSetter(func(c *AppConfig) *int { return &c.MaxWorkers })},
	{"LAST_DIGITS", "last_digits", "last-digits", intSetter(func(c *AppConfig) *int { return &c.LastDigits })},

	{"TIMEOUT", "timeout", "timeout", func(c *AppConfig, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = d
		return nil
	}},

	{"VARIANT", "variant", "variant", stringSetter(func(c *AppConfig) *string { return &c.Variant })},
	{"OUTPUT", "output", "output", stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"MEMORY_LIMIT", "memory_limit", "memory-limit", stringSetter(func(c *AppConfig) *string { return &c.MemoryLimit })},
	{"GC_MODE", "gc_mode", "gc-mode", stringSetter(func(c *AppConfig) *string { return &c.GCMode })},
	{"METRICS_FILE", "metrics_file", "metrics-file", stringSetter(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"LOG_LEVEL", "log_level", "log-level", stringSetter(func(c *AppConfig) *string { return &c.LogLevel })},
	{"CALIBRATION_PROFILE", "calibration_profile", "calibration-profile", stringSetter(func(c *AppConfig) *string { return &c.CalibrationProfile })},

	{"ALL", "all", "all", boolSetter(func(c *AppConfig) *bool { return &c.ShowAll })},
	{"QUIET", "quiet", "quiet", boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", "verbose", "verbose", boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", "details", "details", boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"NO_COLOR", "no_color", "no-color", boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", "tui", "tui", boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBool accepts true/1/yes and false/0/no, case-insensitively.
func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies PICALC_* variables for every setting whose flag
// was not given on the command line.
func applyEnvOverrides(cfg *AppConfig, fs *pflag.FlagSet) error {
	for _, o := range overrides {
		if flagChanged(fs, o.flag) {
			continue
		}
		val, ok := os.LookupEnv(EnvPrefix + o.envKey)
		if !ok || val == "" {
			continue
		}
		if err := o.apply(cfg, val); err != nil {
			return apperrors.NewConfigError("%s%s: %v", EnvPrefix, o.envKey, err)
		}
	}
	return nil
}
