package progress

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ProgressUpdate is one progress report from a calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator among those run together.
	CalculatorIndex int
	// Value is the completed fraction in [0, 1].
	Value float64
}

// ProgressCallback receives a completed fraction in [0, 1].
type ProgressCallback func(progress float64)

// ProgressObserver is notified of progress for a calculator index.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress reports out to its observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Unregister removes an observer.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify sends a report to every registered observer.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(calcIndex, progress)
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Freeze returns a callback bound to calcIndex that notifies the observers
// registered at the time of the call. Later registrations are not seen.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()
	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards reports to a channel without blocking. Reports
// are dropped while the channel is full.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver returns an observer writing to ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: clamp(progress)}:
	default:
	}
}

// LoggingObserver logs a line each time a calculator crosses a threshold.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64

	mu   sync.Mutex
	last map[int]float64
}

// NewLoggingObserver logs every time progress advances by at least threshold.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{logger: logger, threshold: threshold, last: make(map[int]float64)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	prev, seen := o.last[calcIndex]
	if seen && progress-prev < o.threshold && progress < 1 {
		o.mu.Unlock()
		return
	}
	o.last[calcIndex] = progress
	o.mu.Unlock()
	o.logger.Debug().Int("calculator", calcIndex).Float64("progress", progress).Msg("progress")
}

// NoOpObserver discards reports.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}

// TermCounter turns per-term completions from many workers into a single
// fraction of the whole series. It reports at most once per step of total
// and always reports completion.
type TermCounter struct {
	total    uint64
	step     uint64
	done     atomic.Uint64
	reported atomic.Uint64
	report   ProgressCallback
}

// NewTermCounter returns a counter over total terms reporting roughly
// granularity times. A nil report makes Add a plain counter.
func NewTermCounter(total uint64, granularity int, report ProgressCallback) *TermCounter {
	if granularity <= 0 {
		granularity = 100
	}
	step := total / uint64(granularity)
	if step == 0 {
		step = 1
	}
	return &TermCounter{total: total, step: step, report: report}
}

// Add records n completed terms.
func (c *TermCounter) Add(n uint64) {
	done := c.done.Add(n)
	if c.report == nil || c.total == 0 {
		return
	}
	bucket := done / c.step
	if done >= c.total {
		bucket = c.total/c.step + 1
	}
	for {
		prev := c.reported.Load()
		if bucket <= prev {
			return
		}
		if c.reported.CompareAndSwap(prev, bucket) {
			c.report(clamp(float64(done) / float64(c.total)))
			return
		}
	}
}

// Done returns the number of terms completed so far.
func (c *TermCounter) Done() uint64 { return c.done.Load() }

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
