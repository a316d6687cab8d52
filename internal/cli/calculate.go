package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
)

// PrintExecutionConfig prints the plan, worker count and environment of a run.
func PrintExecutionConfig(cfg config.AppConfig, plan chudnovsky.PrecisionPlan, workers int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %sπ to %s digits%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatNumberString(fmt.Sprint(plan.DecimalDigits)), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Series: %s%s%s terms at %s%d%s bits.\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(plan.IterationCount)), ui.ColorReset(),
		ui.ColorCyan(), plan.BitPrecision, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s workers, %d logical processors, Go %s.\n",
		ui.ColorCyan(), workers, ui.ColorReset(), runtime.NumCPU(), runtime.Version())
	if cfg.MemoryLimit != "" {
		fmt.Fprintf(out, "Memory limit: %s.\n", cfg.MemoryLimit)
	}
}

// PrintExecutionMode prints whether one variant runs or several are compared.
func PrintExecutionMode(calculators []chudnovsky.Calculator, out io.Writer) {
	switch len(calculators) {
	case 0:
		fmt.Fprintf(out, "Execution mode: nothing to run.\n")
	case 1:
		fmt.Fprintf(out, "Execution mode: single run with the %s%s%s variant.\n",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "Execution mode: parallel comparison of %d variants.\n", len(calculators))
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
