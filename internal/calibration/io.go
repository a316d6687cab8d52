package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
)

func printCalibrationResults(out io.Writer, results []calibrationResult, bestWorkers int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s\t│ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\n", strings.Repeat("─", 10), strings.Repeat("─", 25))
	for _, r := range results {
		dur := fmt.Sprintf("%sN/A (%v)%s", ui.ColorRed(), r.Err, ui.ColorReset())
		if r.Err == nil {
			dur = format.FormatExecutionDuration(r.Duration)
		}
		mark := ""
		if r.Workers == bestWorkers && r.Err == nil {
			mark = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t│ %s%s%s%s\n", ui.ColorCyan(), r.Workers, ui.ColorReset(), ui.ColorYellow(), dur, ui.ColorReset(), mark)
	}
	tw.Flush()
}
