package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

// recordingPresenter remembers what it was asked to show.
type recordingPresenter struct {
	mu        sync.Mutex
	table     bool
	presented *CalculationResult
	handled   error
}

func (p *recordingPresenter) PresentComparisonTable(results []CalculationResult, out io.Writer) {
	p.mu.Lock()
	p.table = true
	p.mu.Unlock()
}

func (p *recordingPresenter) PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer) {
	p.mu.Lock()
	p.presented = &result
	p.mu.Unlock()
}

func (p *recordingPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	p.mu.Lock()
	p.handled = err
	p.mu.Unlock()
	return apperrors.ExitCodeFor(err)
}

// stubCalculator returns a fixed value after sending a few progress updates.
type stubCalculator struct {
	name  string
	value string
	err   error
	delay time.Duration
}

func (s *stubCalculator) Name() string { return s.name }

func (s *stubCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, digits int, _ chudnovsky.Options) (*chudnovsky.Result, error) {
	for i := 0; i <= 4; i++ {
		select {
		case progressChan <- progress.ProgressUpdate{CalculatorIndex: calcIndex, Value: float64(i) / 4}:
		default:
		}
		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	v, _, err := big.ParseFloat(s.value, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, err
	}
	plan, err := chudnovsky.Plan(digits)
	if err != nil {
		return nil, err
	}
	return &chudnovsky.Result{Value: v, Plan: plan, Variant: s.name, Workers: 1}, nil
}

func TestExecuteCalculations(t *testing.T) {
	t.Parallel()
	calcs := []chudnovsky.Calculator{
		&stubCalculator{name: "a", value: "3.14159265358979"},
		&stubCalculator{name: "b", err: errors.New("boom")},
	}
	cfg := config.Default()
	cfg.Digits = 10

	results := ExecuteCalculations(context.Background(), calcs, cfg, chudnovsky.Options{}, NullProgressReporter{}, io.Discard)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "a" || results[0].Err != nil {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if results[0].Digits != "3141592653" || results[0].Exponent != 1 {
		t.Errorf("digits = %q exp %d, want 3141592653 exp 1", results[0].Digits, results[0].Exponent)
	}
	if results[1].Err == nil || results[1].Result != nil {
		t.Errorf("second result should carry only the error, got %+v", results[1])
	}
}

func TestExecuteCalculations_ReporterSeesEveryUpdate(t *testing.T) {
	t.Parallel()
	calcs := []chudnovsky.Calculator{
		&stubCalculator{name: "a", value: "3.14"},
		&stubCalculator{name: "b", value: "3.14"},
	}
	cfg := config.Default()
	cfg.Digits = 3

	var seen []int
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		if n != 2 {
			t.Errorf("numCalculators = %d, want 2", n)
		}
		for u := range ch {
			seen = append(seen, u.CalculatorIndex)
		}
	})
	ExecuteCalculations(context.Background(), calcs, cfg, chudnovsky.Options{}, reporter, io.Discard)
	// The reporter has returned, so seen is safe to read.
	for _, idx := range seen {
		if idx != 0 && idx != 1 {
			t.Errorf("unexpected calculator index %d", idx)
		}
	}
}

func TestExecuteCalculations_Cancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calcs := []chudnovsky.Calculator{
		&stubCalculator{name: "slow1", value: "3.14", delay: 200 * time.Millisecond},
		&stubCalculator{name: "slow2", value: "3.14", delay: 200 * time.Millisecond},
	}
	cfg := config.Default()

	done := make(chan []CalculationResult)
	go func() {
		done <- ExecuteCalculations(ctx, calcs, cfg, chudnovsky.Options{}, nil, io.Discard)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case results := <-done:
		for _, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("%s: expected context.Canceled, got %v", r.Name, r.Err)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ExecuteCalculations did not return after cancellation")
	}
}

func TestExecuteCalculations_ProgressFloodDoesNotBlock(t *testing.T) {
	t.Parallel()
	calcs := make([]chudnovsky.Calculator, 8)
	for i := range calcs {
		calcs[i] = &stubCalculator{name: "c", value: "3.14"}
	}
	cfg := config.Default()
	cfg.Digits = 3
	slowReporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		for range ch {
			time.Sleep(time.Millisecond)
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		ExecuteCalculations(context.Background(), calcs, cfg, chudnovsky.Options{}, slowReporter, io.Discard)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: ExecuteCalculations did not complete")
	}
}

func TestExecuteCalculations_RealCalculators(t *testing.T) {
	t.Parallel()
	factory := chudnovsky.NewDefaultFactory()
	cfg := config.Default()
	cfg.Digits = 200
	cfg.Variant = config.VariantAll

	results := ExecuteCalculations(context.Background(), GetCalculatorsToRun(cfg, factory), cfg,
		chudnovsky.Options{Workers: 3}, NullProgressReporter{}, io.Discard)
	p := &recordingPresenter{}
	var out bytes.Buffer
	if code := AnalyzeComparisonResults(results, PresentationOptions{Digits: cfg.Digits}, p, &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d, output %q", code, out.String())
	}
	if !strings.HasPrefix(p.presented.Digits, "314159265358979323846") {
		t.Errorf("unexpected digits %q", p.presented.Digits[:30])
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	ok := func(name, digits string, d time.Duration) CalculationResult {
		return CalculationResult{Name: name, Result: &chudnovsky.Result{}, Digits: digits, Exponent: 1, Duration: d}
	}
	fail := func(name string, err error) CalculationResult {
		return CalculationResult{Name: name, Err: err, Duration: time.Millisecond}
	}
	tests := []struct {
		name          string
		results       []CalculationResult
		wantCode      int
		wantTable     bool
		wantPresented string
		wantOutput    string
	}{
		{
			name:          "single success",
			results:       []CalculationResult{ok("parity", "31415", time.Second)},
			wantCode:      apperrors.ExitSuccess,
			wantPresented: "parity",
		},
		{
			name:          "agreement picks fastest",
			results:       []CalculationResult{ok("parity", "31415", 2*time.Second), ok("negbase", "31415", time.Second)},
			wantCode:      apperrors.ExitSuccess,
			wantTable:     true,
			wantPresented: "negbase",
			wantOutput:    "All variants agree",
		},
		{
			name:       "mismatch",
			results:    []CalculationResult{ok("parity", "31415", time.Second), ok("negbase", "31416", 2*time.Second)},
			wantCode:   apperrors.ExitErrorMismatch,
			wantTable:  true,
			wantOutput: "disagree at digit 5",
		},
		{
			name:       "all failed",
			results:    []CalculationResult{fail("parity", context.DeadlineExceeded), fail("negbase", context.DeadlineExceeded)},
			wantCode:   apperrors.ExitErrorTimeout,
			wantTable:  true,
			wantOutput: "No variant could complete",
		},
		{
			name:          "mixed",
			results:       []CalculationResult{fail("parity", errors.New("boom")), ok("negbase", "31415", time.Second)},
			wantCode:      apperrors.ExitSuccess,
			wantTable:     true,
			wantPresented: "negbase",
		},
		{
			name:     "single memory failure",
			results:  []CalculationResult{fail("parity", apperrors.MemoryError{Requested: 1})},
			wantCode: apperrors.ExitErrorResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &recordingPresenter{}
			var out bytes.Buffer
			code := AnalyzeComparisonResults(tt.results, PresentationOptions{}, p, &out)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if p.table != tt.wantTable {
				t.Errorf("table shown = %v, want %v", p.table, tt.wantTable)
			}
			switch {
			case tt.wantPresented == "" && p.presented != nil:
				t.Errorf("unexpected presented result %q", p.presented.Name)
			case tt.wantPresented != "" && (p.presented == nil || p.presented.Name != tt.wantPresented):
				t.Errorf("presented %+v, want %q", p.presented, tt.wantPresented)
			}
			if !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("output %q should contain %q", out.String(), tt.wantOutput)
			}
		})
	}
}

func TestFirstDifference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"31415", "31415", 5},
		{"31415", "31425", 3},
		{"314", "31415", 3},
		{"", "3", 0},
	}
	for _, tt := range tests {
		if got := firstDifference(tt.a, tt.b); got != tt.want {
			t.Errorf("firstDifference(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
