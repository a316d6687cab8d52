package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode selects when the garbage collector is suspended for a run.
type GCMode string

const (
	// GCModeAuto suspends the collector from GCAutoThreshold digits on.
	GCModeAuto GCMode = "auto"
	// GCModeAggressive suspends it for every run.
	GCModeAggressive GCMode = "aggressive"
	// GCModeDisabled never touches it.
	GCModeDisabled GCMode = "disabled"
)

// ValidGCMode reports whether mode names a known GC mode.
func ValidGCMode(mode string) bool {
	switch GCMode(mode) {
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
		return true
	}
	return false
}

// GCAutoThreshold is the digit count from which auto mode suspends the
// collector. Below it a run finishes in well under a second and its
// term integers are short-lived, so collection costs little.
const GCAutoThreshold uint64 = 200_000

// heapCeilingFactor bounds the heap while the collector is off, as a
// multiple of the memory obtained from the OS when the run starts.
const heapCeilingFactor = 3

// suspendsGC reports whether a run of digits digits under mode runs with
// the collector off.
func suspendsGC(mode GCMode, digits uint64) bool {
	switch mode {
	case GCModeAggressive:
		return true
	case GCModeAuto:
		return digits >= GCAutoThreshold
	}
	return false
}

// GCStats describes the heap over one suspended run.
type GCStats struct {
	// HeapAlloc is the live heap when the run ended.
	HeapAlloc uint64
	// TotalAlloc is the number of bytes allocated during the run.
	TotalAlloc uint64
}

// GCController turns the collector off around one series run. Workers
// allocate large term integers that all die when the run ends, so the
// run trades a bounded heap for no collection pauses.
type GCController struct {
	mode    GCMode
	digits  uint64
	suspend bool
	log     zerolog.Logger

	suspended      bool
	restorePercent int
	before, after  runtime.MemStats
}

// NewGCController returns a controller for a run of digits digits. Unknown
// modes behave like GCModeDisabled.
func NewGCController(mode string, digits uint64) *GCController {
	m := GCMode(mode)
	return &GCController{mode: m, digits: digits, suspend: suspendsGC(m, digits), log: zerolog.Nop()}
}

// SetLogger sets the logger for suspend and resume events.
func (gc *GCController) SetLogger(l zerolog.Logger) { gc.log = l }

// Active reports whether Begin suspends the collector.
func (gc *GCController) Active() bool { return gc.suspend }

// Begin turns the collector off and sets a soft heap ceiling.
func (gc *GCController) Begin() {
	if !gc.suspend || gc.suspended {
		return
	}
	runtime.ReadMemStats(&gc.before)
	gc.restorePercent = debug.SetGCPercent(-1)
	if ceiling := int64(gc.before.Sys) * heapCeilingFactor; ceiling > 0 {
		debug.SetMemoryLimit(ceiling)
	}
	gc.suspended = true
	gc.log.Debug().
		Str("mode", string(gc.mode)).
		Uint64("digits", gc.digits).
		Uint64("heap_alloc_bytes", gc.before.HeapAlloc).
		Msg("gc suspended")
}

// End restores the collector and collects the run's garbage. It does
// nothing unless Begin suspended the collector.
func (gc *GCController) End() {
	if !gc.suspended {
		return
	}
	runtime.ReadMemStats(&gc.after)
	debug.SetGCPercent(gc.restorePercent)
	debug.SetMemoryLimit(math.MaxInt64)
	gc.suspended = false
	runtime.GC()
	stats := gc.Stats()
	gc.log.Debug().
		Str("mode", string(gc.mode)).
		Uint64("digits", gc.digits).
		Uint64("heap_alloc_bytes", stats.HeapAlloc).
		Uint64("run_alloc_bytes", stats.TotalAlloc).
		Msg("gc resumed")
}

// Stats returns the heap figures of the last suspended run.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:  gc.after.HeapAlloc,
		TotalAlloc: gc.after.TotalAlloc - gc.before.TotalAlloc,
	}
}
