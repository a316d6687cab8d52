package chudnovsky

import (
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of one calculator run.
type Result struct {
	// Value is π at the plan's working precision.
	Value *big.Float
	Plan  PrecisionPlan
	// Ranges are the term ranges evaluated, one per worker.
	Ranges   []WorkRange
	Workers  int
	Variant  string
	Duration time.Duration
}

// Digits returns the first n significant decimal digits of the value with
// no decimal point, and the decimal exponent: the value equals
// 0.<digits> × 10^exp. For π this is ("31415…", 1). A non-positive n uses
// the plan's digit count.
func (r *Result) Digits(n int) (string, int) {
	if r == nil || r.Value == nil {
		return "", 0
	}
	if n <= 0 {
		n = int(r.Plan.DecimalDigits)
	}
	return significantDigits(r.Value, n)
}

// significantDigits truncates |x| to n significant decimal digits. The
// digits are cut, never rounded, so a run of nines after digit n cannot
// carry into the result.
func significantDigits(x *big.Float, n int) (string, int) {
	if x.Sign() == 0 {
		return strings.Repeat("0", n), 0
	}
	abs := new(big.Float).Abs(x)
	exp := decimalExponent(abs)
	for {
		digits := truncatedDigits(abs, n-exp)
		switch {
		case len(digits) > n:
			exp++
		case len(digits) < n:
			exp--
		default:
			return digits, exp
		}
	}
}

// decimalExponent estimates e with 10^(e-1) <= x < 10^e. The estimate can
// be off by one when x is within rounding of a power of ten.
func decimalExponent(x *big.Float) int {
	text := x.Text('e', 2)
	_, expText, _ := strings.Cut(text, "e")
	e, _ := strconv.Atoi(expText)
	return e + 1
}

// truncatedDigits returns ⌊x × 10^shift⌋ in decimal for x > 0.
func truncatedDigits(x *big.Float, shift int) string {
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(absInt(shift))), nil)
	prec := x.MinPrec() + uint(pow.BitLen()) + 1
	if e := x.MantExp(nil); e > 0 {
		prec += uint(e)
	}
	scaled := new(big.Float).SetPrec(prec).SetMode(big.ToZero)
	p := new(big.Float).SetPrec(uint(pow.BitLen()) + 1).SetInt(pow)
	if shift >= 0 {
		scaled.Mul(x, p)
	} else {
		scaled.Quo(x, p)
	}
	z, _ := scaled.Int(nil)
	return z.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
