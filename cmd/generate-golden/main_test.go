package main

import (
	"context"
	"strings"
	"testing"

	"github.com/agbru/picalc/internal/chudnovsky"
)

const pi100 = "3141592653589793238462643383279502884197169399375105820974944592307816406286208998628034825342117067"

func TestPiDigits_KnownPrefix(t *testing.T) {
	for _, n := range []int{1, 15, 50, 100} {
		if got := piDigits(n); got != pi100[:n] {
			t.Errorf("piDigits(%d) = %s, want %s", n, got, pi100[:n])
		}
	}
	if piDigits(0) != "" {
		t.Error("piDigits(0) should be empty")
	}
}

func TestPiDigits_PrefixConsistency(t *testing.T) {
	long := piDigits(2000)
	for _, n := range []int{100, 500, 1999} {
		if !strings.HasPrefix(long, piDigits(n)) {
			t.Errorf("piDigits(%d) is not a prefix of piDigits(2000)", n)
		}
	}
}

// The series calculator and this oracle share no code beyond the series
// constants, so agreement checks the parallel evaluation and reduction.
func TestOracleMatchesSeriesCalculator(t *testing.T) {
	for _, sign := range []chudnovsky.SignMode{chudnovsky.SignByParity, chudnovsky.SignByNegativeBase} {
		calc := chudnovsky.NewSeriesCalculator(sign)
		for _, tc := range []struct{ digits, workers int }{{1000, 1}, {1000, 4}, {3000, 7}} {
			res, err := calc.Calculate(context.Background(), nil, 0, tc.digits, chudnovsky.Options{Workers: tc.workers})
			if err != nil {
				t.Fatalf("%s: %v", calc.Name(), err)
			}
			got, exp := res.Digits(tc.digits)
			if exp != 1 || got != piDigits(tc.digits) {
				t.Errorf("%s with %d workers disagrees with the oracle at %d digits", calc.Name(), tc.workers, tc.digits)
			}
		}
	}
}

// Digit counts just below a multiple of the digits per term, and the run of
// nines at decimal 762, are where a short series or a rounded mantissa
// shows up in the last digit.
func TestOracleMatchesAtEdgeDigitCounts(t *testing.T) {
	oracle := piDigits(1200)
	digits := []int{1, 2, 14, 15, 482, 638, 762, 763, 764, 765, 794, 1191}
	for _, sign := range []chudnovsky.SignMode{chudnovsky.SignByParity, chudnovsky.SignByNegativeBase} {
		calc := chudnovsky.NewSeriesCalculator(sign)
		for _, d := range digits {
			for _, workers := range []int{1, 3, 8} {
				res, err := calc.Calculate(context.Background(), nil, 0, d, chudnovsky.Options{Workers: workers})
				if err != nil {
					t.Fatalf("%s d=%d: %v", calc.Name(), d, err)
				}
				got, exp := res.Digits(0)
				if exp != 1 || got != oracle[:d] {
					t.Errorf("%s d=%d workers=%d: last digits %s, want %s",
						calc.Name(), d, workers, tail(got), tail(oracle[:d]))
				}
			}
		}
	}
}

func TestOracleSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("sweep skipped in short mode")
	}
	const maxDigits = 1200
	oracle := piDigits(maxDigits)
	calc := chudnovsky.NewSeriesCalculator(chudnovsky.SignByParity)
	for d := 1; d <= maxDigits; d++ {
		res, err := calc.Calculate(context.Background(), nil, 0, d, chudnovsky.Options{Workers: 4})
		if err != nil {
			t.Fatalf("d=%d: %v", d, err)
		}
		if got, _ := res.Digits(0); got != oracle[:d] {
			t.Errorf("d=%d: last digits %s, want %s", d, tail(got), tail(oracle[:d]))
		}
	}
}

func tail(s string) string {
	if len(s) > 8 {
		return s[len(s)-8:]
	}
	return s
}

func TestParseCounts(t *testing.T) {
	counts, err := parseCounts("15, 50,,100")
	if err != nil || len(counts) != 3 || counts[2] != 100 {
		t.Errorf("parseCounts = %v, %v", counts, err)
	}
	for _, bad := range []string{"abc", "10,-1", "0"} {
		if _, err := parseCounts(bad); err == nil {
			t.Errorf("parseCounts(%q) should fail", bad)
		}
	}
}
