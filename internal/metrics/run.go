package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/picalc/internal/chudnovsky"
)

const namespace = "picalc"

// RunMetrics records the measurements of calculator runs. It implements
// chudnovsky.Recorder and is safe for concurrent use.
type RunMetrics struct {
	registry *prometheus.Registry

	termsEvaluated *prometheus.CounterVec
	workerDuration *prometheus.HistogramVec
	runDuration    *prometheus.GaugeVec
	digits         prometheus.Gauge
	precisionBits  prometheus.Gauge
	iterations     prometheus.Gauge
	workers        prometheus.Gauge
	heapAlloc      prometheus.Gauge
	gcCycles       prometheus.Gauge
}

var _ chudnovsky.Recorder = (*RunMetrics)(nil)

// NewRunMetrics creates the metrics in a fresh registry.
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &RunMetrics{
		registry: reg,
		termsEvaluated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terms_evaluated_total",
			Help:      "Series terms evaluated, by variant.",
		}, []string{"variant"}),
		workerDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "worker_duration_seconds",
			Help:      "Time each worker spent on its range.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 12),
		}, []string{"variant"}),
		runDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run, by variant.",
		}, []string{"variant"}),
		digits: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "digits",
			Help:      "Requested decimal digits.",
		}),
		precisionBits: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "precision_bits",
			Help:      "Planned bit precision.",
		}),
		iterations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "iterations",
			Help:      "Series terms required by the plan.",
		}),
		workers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers",
			Help:      "Parallel ranges used.",
		}),
		heapAlloc: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use after the run.",
		}),
		gcCycles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles at the end of the run.",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *RunMetrics) Registry() *prometheus.Registry { return m.registry }

// ObserveWorker records one worker's range.
func (m *RunMetrics) ObserveWorker(variant string, _ int, terms uint64, elapsed time.Duration) {
	m.termsEvaluated.WithLabelValues(variant).Add(float64(terms))
	m.workerDuration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// ObserveRun records a completed run.
func (m *RunMetrics) ObserveRun(variant string, plan chudnovsky.PrecisionPlan, workers int, elapsed time.Duration) {
	m.runDuration.WithLabelValues(variant).Set(elapsed.Seconds())
	m.digits.Set(float64(plan.DecimalDigits))
	m.precisionBits.Set(float64(plan.BitPrecision))
	m.iterations.Set(float64(plan.IterationCount))
	m.workers.Set(float64(workers))
}

// ObserveMemory records a memory snapshot.
func (m *RunMetrics) ObserveMemory(s MemorySnapshot) {
	m.heapAlloc.Set(float64(s.HeapAlloc))
	m.gcCycles.Set(float64(s.NumGC))
}

// WriteFile writes every metric to path in the Prometheus text format.
func (m *RunMetrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
