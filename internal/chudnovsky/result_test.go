package chudnovsky

import (
	"math/big"
	"strings"
	"testing"
)

func parseFloat(t *testing.T, s string) *big.Float {
	t.Helper()
	x, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", s, err)
	}
	return x
}

func TestSignificantDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		value  string
		n      int
		digits string
		exp    int
	}{
		{"nines are cut not carried", "1.9999999", 3, "199", 1},
		{"just below a power of ten", "9.9999999999", 2, "99", 1},
		{"exact power of ten", "1000", 2, "10", 4},
		{"fraction", "0.125", 3, "125", 0},
		{"negative", "-0.125", 2, "12", 0},
		{"padded with zeros", "2.5", 4, "2500", 1},
		{"zero", "0", 3, "000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			digits, exp := significantDigits(parseFloat(t, tt.value), tt.n)
			if digits != tt.digits || exp != tt.exp {
				t.Errorf("significantDigits(%s, %d) = %q e%d, want %q e%d",
					tt.value, tt.n, digits, exp, tt.digits, tt.exp)
			}
		})
	}
}

// π has six nines from decimal 762 on; any rounding carries into the
// reported digits.
func TestDigitsAtRunOfNines(t *testing.T) {
	t.Parallel()
	res := calculate(t, NewSeriesCalculator(SignByParity), 1000, Options{Workers: 4})
	full, _ := res.Digits(1000)
	tails := map[int]string{
		762: "70721134",
		763: "07211349",
		764: "72113499",
		765: "21134999",
	}
	for n, tail := range tails {
		got, exp := res.Digits(n)
		if exp != 1 || !strings.HasSuffix(got, tail) {
			t.Errorf("Digits(%d) ends in %q e%d, want %q e1", n, got[len(got)-8:], exp, tail)
		}
		if got != full[:n] {
			t.Errorf("Digits(%d) is not a prefix of Digits(1000)", n)
		}
	}
}

// The plain ⌊d/14.18⌋+1 term count leaves the last digit unsettled at
// these digit counts.
func TestDigitsAtTermBoundaries(t *testing.T) {
	t.Parallel()
	tails := map[int]string{
		482:  "57527248",
		638:  "27577896",
		794:  "17328160",
		1191: "67113900",
	}
	for _, sign := range []SignMode{SignByParity, SignByNegativeBase} {
		for d, tail := range tails {
			res := calculate(t, NewSeriesCalculator(sign), d, Options{Workers: 3})
			got, _ := res.Digits(0)
			if len(got) != d || !strings.HasSuffix(got, tail) {
				t.Errorf("%s d=%d: got tail %q, want %q", sign, d, got[len(got)-8:], tail)
			}
		}
	}
}
