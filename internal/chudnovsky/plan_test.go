package chudnovsky

import (
	"math"
	"math/big"
	"math/bits"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/picalc/internal/errors"
)

func TestPlanKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		digits     int
		bits       uint
		iterations uint64
	}{
		{1, 4, 1},
		{14, 47, 1},
		{15, 50, 2},
		{50, 167, 4},
		{100, 333, 8},
		{1000, 3322, 71},
	}
	for _, tt := range tests {
		p, err := Plan(tt.digits)
		if err != nil {
			t.Fatalf("Plan(%d): %v", tt.digits, err)
		}
		if p.DecimalDigits != uint64(tt.digits) || p.BitPrecision != tt.bits || p.IterationCount != tt.iterations {
			t.Errorf("Plan(%d) = %+v, want bits=%d iterations=%d", tt.digits, p, tt.bits, tt.iterations)
		}
	}
}

func TestPlanRejectsInvalidDigits(t *testing.T) {
	t.Parallel()
	for _, d := range []int{0, -1, -1000, MaxDigits + 1} {
		if _, err := Plan(d); !apperrors.IsInvalidInput(err) {
			t.Errorf("Plan(%d) error = %v, want invalid input", d, err)
		}
	}
}

func TestPlanMaxDigitsFitsBigFloat(t *testing.T) {
	t.Parallel()
	if MaxDigits <= 0 {
		t.Fatalf("MaxDigits = %d", MaxDigits)
	}
	p, err := Plan(MaxDigits)
	if err != nil {
		t.Fatalf("Plan(MaxDigits): %v", err)
	}
	if p.WorkingPrecision() > big.MaxPrec {
		t.Errorf("working precision %d exceeds big.MaxPrec", p.WorkingPrecision())
	}
}

func TestPlanSeriesTermsIncludeGuard(t *testing.T) {
	t.Parallel()
	for _, d := range []int{1, 482, 638, 794, 1191} {
		p, err := Plan(d)
		if err != nil {
			t.Fatalf("Plan(%d): %v", d, err)
		}
		if p.SeriesTerms() <= p.IterationCount {
			t.Errorf("Plan(%d).SeriesTerms() = %d, want more than %d", d, p.SeriesTerms(), p.IterationCount)
		}
		// Each extra term buys about DigitsPerTerm digits past d.
		if float64(p.SeriesTerms())*DigitsPerTerm < float64(d)+DigitsPerTerm {
			t.Errorf("Plan(%d) sums %d terms, too few to settle the last digit", d, p.SeriesTerms())
		}
	}
}

func TestWorkingPrecision(t *testing.T) {
	t.Parallel()
	tests := []struct {
		bitPrecision uint
		words        uint
	}{
		{1, 2},
		{bits.UintSize, 2},
		{bits.UintSize + 1, 3},
		{3322, (3322+bits.UintSize-1)/bits.UintSize + 1},
	}
	for _, tt := range tests {
		p := PrecisionPlan{BitPrecision: tt.bitPrecision}
		if got, want := p.WorkingPrecision(), tt.words*bits.UintSize; got != want {
			t.Errorf("WorkingPrecision(%d) = %d, want %d", tt.bitPrecision, got, want)
		}
	}
}

func TestPlanProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("bit precision covers the requested digits", prop.ForAll(
		func(d int) bool {
			p, err := Plan(d)
			if err != nil {
				return false
			}
			return float64(p.BitPrecision) >= float64(d)*math.Log2(10) &&
				p.WorkingPrecision() > p.BitPrecision
		},
		gen.IntRange(1, 50_000_000),
	))

	properties.Property("iterations never undershoot", prop.ForAll(
		func(d int) bool {
			p, err := Plan(d)
			if err != nil {
				return false
			}
			return p.IterationCount >= 1 && float64(p.IterationCount)*DigitsPerTerm > float64(d)
		},
		gen.IntRange(1, 50_000_000),
	))

	properties.TestingRun(t)
}
