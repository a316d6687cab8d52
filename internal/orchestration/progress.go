package orchestration

import (
	"time"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressAggregator folds per-calculator progress into one average with
// an ETA. The CLI spinner and the TUI both consume updates through it.
type ProgressAggregator struct {
	state  *format.ProgressWithETA
	values []float64
}

// NewProgressAggregator returns nil if numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:  format.NewProgressWithETA(numCalculators),
		values: make([]float64, numCalculators),
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records update and returns the new aggregate. Updates with an
// index outside the tracked range only refresh the aggregate.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	if update.CalculatorIndex >= 0 && update.CalculatorIndex < len(a.values) {
		a.values[update.CalculatorIndex] = min(max(update.Value, 0), 1)
	}
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// Values returns the last progress seen for each calculator.
func (a *ProgressAggregator) Values() []float64 {
	return append([]float64(nil), a.values...)
}

func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

func (a *ProgressAggregator) NumCalculators() int { return len(a.values) }

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool { return len(a.values) > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
