package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/sysmon"
	"github.com/agbru/picalc/internal/ui"
)

// FormatQuietResult returns what quiet mode prints: the whole value when it
// fits the window, otherwise the trailing window of digits.
func FormatQuietResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions) string {
	return format.RenderDigits(result.Digits, result.Exponent, opts.LastDigits, opts.ShowAll).Text
}

// DisplayQuietResult prints FormatQuietResult on its own line.
func DisplayQuietResult(out io.Writer, result orchestration.CalculationResult, opts orchestration.PresentationOptions) {
	fmt.Fprintln(out, FormatQuietResult(result, opts))
}

// DisplayResult prints the result section of a run.
func DisplayResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "Variant %s%s%s computed %s%s%s significant digits in %s%s%s.\n",
		ui.ColorBlue(), result.Name, ui.ColorReset(),
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(result.Digits))), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())

	if opts.Verbose && result.Result != nil {
		r := result.Result
		fmt.Fprintf(out, "Plan: %s, working precision %d bits.\n", r.Plan, r.Plan.WorkingPrecision())
		for i, wr := range r.Ranges {
			fmt.Fprintf(out, "  worker %-3d %s (%d terms)\n", i, wr, wr.Len())
		}
	}

	rendered := format.RenderDigits(result.Digits, result.Exponent, opts.LastDigits, opts.ShowAll)
	if rendered.Full {
		fmt.Fprintf(out, "π = %s%s%s\n", ui.ColorGreen(), rendered.Text, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "Last %d digits: %s%s%s\n", opts.LastDigits, ui.ColorGreen(), rendered.Text, ui.ColorReset())
	fmt.Fprintf(out, "%sTip: use --all to print every digit or --output to save them.%s\n", ui.ColorGrey(), ui.ColorReset())
}

// RunDetails are the resource figures printed with --details.
type RunDetails struct {
	Wall time.Duration
	// CPU is nil when the process CPU time could not be read.
	CPU    *sysmon.CPUTime
	Memory metrics.MemorySnapshot
	// GC is set when the GC was suspended for the run.
	GC *memory.GCStats
}

// DisplayRunDetails prints wall time, CPU time and memory statistics.
func DisplayRunDetails(out io.Writer, d RunDetails) {
	fmt.Fprintf(out, "\n--- Details ---\n")
	fmt.Fprintf(out, "  Wall time:       %s\n", format.FormatExecutionDuration(d.Wall))
	if d.CPU != nil {
		fmt.Fprintf(out, "  CPU time:        %s (user %s, system %s)\n",
			format.FormatExecutionDuration(d.CPU.Total()),
			format.FormatExecutionDuration(d.CPU.User),
			format.FormatExecutionDuration(d.CPU.System))
		if d.Wall > 0 {
			fmt.Fprintf(out, "  CPU utilization: %.1f cores of %d\n",
				d.CPU.Total().Seconds()/d.Wall.Seconds(), runtime.NumCPU())
		}
	}
	fmt.Fprintf(out, "  Heap in use:     %s\n", memory.FormatBytes(d.Memory.HeapAlloc))
	fmt.Fprintf(out, "  Obtained from OS: %s\n", memory.FormatBytes(d.Memory.Sys))
	fmt.Fprintf(out, "  GC cycles:       %d (%s paused)\n", d.Memory.NumGC, format.FormatExecutionDuration(d.Memory.PauseTotal))
	if d.GC != nil {
		fmt.Fprintf(out, "  GC suspended:    %s allocated during the run\n", memory.FormatBytes(d.GC.TotalAlloc))
	}
}

// FileHeader describes a run in the output file header.
type FileHeader struct {
	RunID     string
	Generated time.Time
}

// WriteResultToFile writes a commented header and the full decimal value
// to path, creating parent directories as needed.
func WriteResultToFile(path string, result orchestration.CalculationResult, header FileHeader) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# picalc result\n")
	fmt.Fprintf(w, "# Run ID: %s\n", header.RunID)
	fmt.Fprintf(w, "# Generated: %s\n", header.Generated.Format(time.RFC3339))
	fmt.Fprintf(w, "# Variant: %s\n", result.Name)
	fmt.Fprintf(w, "# Digits: %d\n", len(result.Digits))
	if r := result.Result; r != nil {
		fmt.Fprintf(w, "# Iterations: %d\n", r.Plan.IterationCount)
		fmt.Fprintf(w, "# Bits: %d\n", r.Plan.BitPrecision)
		fmt.Fprintf(w, "# Workers: %d\n", r.Workers)
	}
	fmt.Fprintf(w, "# Duration: %s\n\n", result.Duration)
	fmt.Fprintln(w, format.DecimalString(result.Digits, result.Exponent))

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
