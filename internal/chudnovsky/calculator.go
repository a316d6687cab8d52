package chudnovsky

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/progress"
)

const tracerName = "github.com/agbru/picalc/internal/chudnovsky"

// progressGranularity is the number of progress reports per run.
const progressGranularity = 200

// Calculator computes π to a number of decimal digits.
type Calculator interface {
	// Name identifies the calculator, e.g. "parity".
	Name() string
	// Calculate runs the computation. Progress in [0, 1] is sent without
	// blocking on progressChan tagged with calcIndex; progressChan may be nil.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, digits int, opts Options) (*Result, error)
}

// SeriesCalculator evaluates the Chudnovsky series in parallel ranges with
// one sign convention.
type SeriesCalculator struct {
	sign SignMode
}

// NewSeriesCalculator returns a calculator using sign.
func NewSeriesCalculator(sign SignMode) *SeriesCalculator {
	return &SeriesCalculator{sign: sign}
}

// Name returns the sign mode's name.
func (c *SeriesCalculator) Name() string { return c.sign.String() }

// Calculate plans the run, partitions the terms, evaluates every range on
// its own goroutine and reduces the partial sums once all workers have
// returned. Planning and memory errors are returned before any worker
// starts; the first worker error cancels the others.
func (c *SeriesCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, digits int, opts Options) (res *Result, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "chudnovsky.Calculate",
		trace.WithAttributes(
			attribute.String("variant", c.Name()),
			attribute.Int("digits", digits),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	start := time.Now()
	log := opts.logger()

	plan, err := Plan(digits)
	if err != nil {
		return nil, err
	}
	workers := ResolveWorkers(opts.Workers, opts.MaxWorkers)
	terms := plan.SeriesTerms()
	ranges, err := Partition(terms, workers)
	if err != nil {
		return nil, err
	}
	prec := plan.WorkingPrecision()
	span.SetAttributes(
		attribute.Int("workers", workers),
		attribute.Int64("iterations", int64(plan.IterationCount)),
		attribute.Int64("terms", int64(terms)),
		attribute.Int("precision_bits", int(prec)),
	)

	budget := memory.Budget{Limit: opts.MemoryLimit, Available: opts.AvailableMemory}
	peak := memory.EstimatePeak(lastIndices(ranges), prec)
	if err := budget.Check(peak); err != nil {
		return nil, err
	}

	log.Debug("plan ready",
		logging.String("variant", c.Name()),
		logging.Uint64("digits", plan.DecimalDigits),
		logging.Uint64("iterations", plan.IterationCount),
		logging.Uint64("terms", terms),
		logging.Int("precision_bits", int(prec)),
		logging.Int("workers", workers),
		logging.String("estimated_peak", memory.FormatBytes(peak)),
	)

	subject := progress.NewProgressSubject()
	subject.Register(progress.NewChannelObserver(progressChan))
	for _, o := range opts.Observers {
		subject.Register(o)
	}
	report := subject.Freeze(calcIndex)
	report(0)
	counter := progress.NewTermCounter(terms, progressGranularity, report)

	eval := Evaluator{Sign: c.sign, Precision: prec, TermByteLimit: budget.Effective()}
	partials := make([]*big.Float, len(ranges))

	evalCtx, evalSpan := otel.Tracer(tracerName).Start(ctx, "chudnovsky.Evaluate")
	err = parallel.Run(evalCtx, len(ranges), func(ctx context.Context, i int) error {
		t0 := time.Now()
		sum, err := eval.Evaluate(ctx, ranges[i], counter)
		if err != nil {
			return fmt.Errorf("worker %d %s: %w", i, ranges[i], err)
		}
		partials[i] = sum
		elapsed := time.Since(t0)
		log.Debug("range evaluated",
			logging.String("variant", c.Name()),
			logging.Int("worker", i),
			logging.String("range", ranges[i].String()),
			logging.Duration("elapsed", elapsed),
		)
		if opts.Recorder != nil {
			opts.Recorder.ObserveWorker(c.Name(), i, ranges[i].Len(), elapsed)
		}
		return nil
	})
	evalSpan.End()
	if err != nil {
		return nil, err
	}

	_, reduceSpan := otel.Tracer(tracerName).Start(ctx, "chudnovsky.Reduce")
	value, err := Reduce(partials, prec)
	reduceSpan.End()
	if err != nil {
		return nil, err
	}
	report(1)

	elapsed := time.Since(start)
	if opts.Recorder != nil {
		opts.Recorder.ObserveRun(c.Name(), plan, workers, elapsed)
	}
	return &Result{
		Value:    value,
		Plan:     plan,
		Ranges:   ranges,
		Workers:  workers,
		Variant:  c.Name(),
		Duration: elapsed,
	}, nil
}

// lastIndices returns the last term index of each range, or -1 for an
// empty range.
func lastIndices(ranges []WorkRange) []int64 {
	out := make([]int64, len(ranges))
	for i, r := range ranges {
		if r.Empty() {
			out[i] = -1
			continue
		}
		out[i] = int64(r.End - 1)
	}
	return out
}
