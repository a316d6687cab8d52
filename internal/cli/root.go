package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/ui"
)

// Runner executes resolved commands and returns their exit codes.
type Runner interface {
	RunCalculate(ctx context.Context, cfg config.AppConfig, out io.Writer) int
	RunCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) int
}

// BuildInfo is printed by the version command.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the picalc command tree. The exit code of the
// command that ran is stored in *exitCode.
func NewRootCommand(runner Runner, info BuildInfo, exitCode *int) *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "picalc",
		Short: "Compute π with the Chudnovsky series on all cores",
		Long: `picalc computes π to a chosen number of significant digits with the
Chudnovsky series. The terms are split into contiguous ranges evaluated in
parallel, one per worker, and summed once every worker has finished.

Settings are read from flags, then PICALC_* environment variables, then the
TOML file given with --config.`,
		Example: `  picalc --digits 10000
  picalc -d 1000000 --workers 8 --details
  picalc -d 5000 --variant all
  picalc -d 100 --quiet --all`,
		Version:       info.Version,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.Resolve(&cfg, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Calibrate {
				*exitCode = runner.RunCalibrate(cmd.Context(), cfg, cmd.OutOrStdout())
				return nil
			}
			*exitCode = runner.RunCalculate(cmd.Context(), cfg, cmd.OutOrStdout())
			return nil
		},
	}
	config.BindFlags(root.PersistentFlags(), &cfg)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})

	root.AddCommand(
		&cobra.Command{
			Use:   "calibrate",
			Short: "Time the computation for several worker counts and save the fastest",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				*exitCode = runner.RunCalibrate(cmd.Context(), cfg, cmd.OutOrStdout())
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  noArgs,
			PersistentPreRunE: func(*cobra.Command, []string) error {
				return nil
			},
			Run: func(cmd *cobra.Command, _ []string) {
				PrintVersion(cmd.OutOrStdout(), info)
			},
		},
	)
	return root
}

// Execute runs the command tree for args and returns the process exit code.
// Errors from flag parsing and configuration resolution map to
// ExitErrorConfig.
func Execute(ctx context.Context, runner Runner, info BuildInfo, args []string, out, errOut io.Writer) int {
	code := apperrors.ExitSuccess
	root := NewRootCommand(runner, info, &code)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitCodeFor(err)
	}
	return code
}

// PrintVersion prints the build information.
func PrintVersion(out io.Writer, info BuildInfo) {
	fmt.Fprintf(out, "picalc %s\n", info.Version)
	if info.Commit != "" {
		fmt.Fprintf(out, "  commit: %s\n", info.Commit)
	}
	if info.Date != "" {
		fmt.Fprintf(out, "  built:  %s\n", info.Date)
	}
	fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return apperrors.NewConfigError("%q takes no arguments, got %q", cmd.CommandPath(), args)
	}
	return nil
}
