package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a runtime memory reading. GC figures count from the
// creation of the collector that took it.
type MemorySnapshot struct {
	HeapAlloc   uint64
	HeapSys     uint64
	Sys         uint64
	HeapObjects uint64
	NumGC       uint32
	PauseTotal  time.Duration
	Goroutines  int
}

// MemoryCollector reads runtime memory statistics relative to a baseline
// taken when it is created.
type MemoryCollector struct {
	baseGC    uint32
	basePause uint64
}

// NewMemoryCollector records the current GC counters as the baseline.
func NewMemoryCollector() *MemoryCollector {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &MemoryCollector{baseGC: m.NumGC, basePause: m.PauseTotalNs}
}

// Snapshot reads the current statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapSys:     m.HeapSys,
		Sys:         m.Sys,
		HeapObjects: m.HeapObjects,
		NumGC:       m.NumGC - mc.baseGC,
		PauseTotal:  time.Duration(m.PauseTotalNs - mc.basePause),
		Goroutines:  runtime.NumGoroutine(),
	}
}
