package tui

import (
	"time"

	"github.com/agbru/picalc/internal/orchestration"
)

// ProgressMsg carries one progress update and the running aggregate.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent when the progress channel closes.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-variant outcomes of a comparison.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the result chosen for display.
type FinalResultMsg struct {
	Result  orchestration.CalculationResult
	Options orchestration.PresentationOptions
}

// ErrorMsg reports a run in which no variant succeeded.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg is a system-wide CPU and memory sample in percent.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg ends a run. Generation identifies the run so a
// restarted dashboard ignores messages from the previous one.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run's context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
