package chudnovsky

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

func TestEvaluateEmptyRangeIsZero(t *testing.T) {
	t.Parallel()
	e := Evaluator{Sign: SignByParity, Precision: 256}
	sum, err := e.Evaluate(context.Background(), WorkRange{Start: 5, End: 5}, nil)
	if err != nil {
		t.Fatalf("empty range returned error %v", err)
	}
	if sum.Sign() != 0 || sum.Prec() != 256 {
		t.Errorf("empty range sum = %s (prec %d), want 0 at 256 bits", sum.Text('g', 10), sum.Prec())
	}
}

func TestEvaluateCountsTerms(t *testing.T) {
	t.Parallel()
	counter := progress.NewTermCounter(9, 3, nil)
	e := Evaluator{Sign: SignByNegativeBase, Precision: 512}
	if _, err := e.Evaluate(context.Background(), WorkRange{Start: 2, End: 11}, counter); err != nil {
		t.Fatal(err)
	}
	if counter.Done() != 9 {
		t.Errorf("counted %d terms, want 9", counter.Done())
	}
}

func TestEvaluateSplitMatchesWhole(t *testing.T) {
	t.Parallel()
	const prec = 1024
	e := Evaluator{Sign: SignByParity, Precision: prec}
	ctx := context.Background()
	whole, err := e.Evaluate(ctx, WorkRange{Start: 0, End: 20}, nil)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := e.Evaluate(ctx, WorkRange{Start: 0, End: 7}, nil)
	right, _ := e.Evaluate(ctx, WorkRange{Start: 7, End: 20}, nil)
	split := new(big.Float).SetPrec(prec).Add(left, right)

	diff := new(big.Float).SetPrec(prec).Sub(whole, split)
	rel := new(big.Float).Quo(diff.Abs(diff), whole)
	if rel.Cmp(big.NewFloat(1e-300)) > 0 {
		t.Errorf("split sum differs from whole sum by %s", rel.Text('g', 5))
	}
}

func TestEvaluateHonorsCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := Evaluator{Sign: SignByParity, Precision: 256}
	_, err := e.Evaluate(ctx, WorkRange{Start: 0, End: 10}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate on canceled context returned %v", err)
	}
}

func TestEvaluateMemoryGuard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		eval  Evaluator
		r     WorkRange
		check func(error) bool
	}{
		{
			name:  "term larger than limit",
			eval:  Evaluator{Sign: SignByParity, Precision: 256, TermByteLimit: 64},
			r:     WorkRange{Start: 0, End: 500},
			check: apperrors.IsResourceExhausted,
		},
		{
			name:  "index beyond representable factorials",
			eval:  Evaluator{Sign: SignByParity, Precision: 256},
			r:     WorkRange{Start: 1 << 62, End: 1<<62 + 1},
			check: apperrors.IsResourceExhausted,
		},
		{
			name:  "zero precision",
			eval:  Evaluator{Sign: SignByParity},
			r:     WorkRange{Start: 0, End: 1},
			check: apperrors.IsInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.eval.Evaluate(context.Background(), tt.r, nil)
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestReduce(t *testing.T) {
	t.Parallel()
	if _, err := Reduce([]*big.Float{big.NewFloat(1), nil}, 128); err == nil {
		t.Error("missing partial sum should be an error")
	}
	zero := new(big.Float)
	if _, err := Reduce([]*big.Float{zero, zero}, 128); !errors.Is(err, ErrZeroSum) {
		t.Errorf("zero total returned %v, want ErrZeroSum", err)
	}

	// A single term gives about 14 digits.
	v, err := Reduce([]*big.Float{new(big.Float).SetPrec(128).SetInt64(termA)}, 128)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Text('f', 12); got != "3.141592653590" {
		t.Errorf("one-term value = %s", got)
	}
	if v.Prec() != 128 {
		t.Errorf("result precision = %d, want 128", v.Prec())
	}
}
