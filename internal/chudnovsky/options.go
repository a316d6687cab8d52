package chudnovsky

import (
	"time"

	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/progress"
)

// Recorder receives measurements from a run. Implementations must be safe
// for concurrent use; ObserveWorker is called from worker goroutines.
type Recorder interface {
	ObserveWorker(variant string, worker int, terms uint64, elapsed time.Duration)
	ObserveRun(variant string, plan PrecisionPlan, workers int, elapsed time.Duration)
}

// Options configures a single calculation.
type Options struct {
	// Workers is the number of parallel ranges. Zero resolves to the CPUs
	// in the affinity mask capped at MaxWorkers.
	Workers int
	// MaxWorkers caps the resolved worker count. Zero means DefaultMaxWorkers.
	MaxWorkers int
	// MemoryLimit is the configured memory ceiling in bytes; zero is unbounded.
	MemoryLimit uint64
	// AvailableMemory is the system's available memory in bytes; zero is unknown.
	AvailableMemory uint64
	// Logger receives debug events. Nil discards them.
	Logger logging.Logger
	// Recorder receives measurements. Nil discards them.
	Recorder Recorder
	// Observers are notified of progress in addition to the progress channel.
	Observers []progress.ProgressObserver
}

// ResolveWorkers returns the worker count to use: an explicit count is
// returned as is, zero becomes the number of CPUs this process may run on
// capped at maxWorkers. Negative counts are returned unchanged for
// Partition to reject.
func ResolveWorkers(workers, maxWorkers int) int {
	if workers != 0 {
		return workers
	}
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return max(min(availableCPUs(), maxWorkers), 1)
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.Nop()
	}
	return o.Logger
}
