package chudnovsky

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// guardWords is the number of whole words of precision carried beyond
// BitPrecision during arithmetic.
const guardWords = 1

// guardTerms are evaluated past IterationCount. ⌊d/14.18⌋+1 terms leave
// the error of the truncated series near 10^-d, which is not enough to fix
// digit d when d sits just below a multiple of DigitsPerTerm.
const guardTerms = 2

// MaxDigits is the largest digit count whose working precision fits in a
// big.Float.
var MaxDigits = int(math.Floor(float64(big.MaxPrec-(guardWords+1)*bits.UintSize) / BitsPerDecimalDigit))

// PrecisionPlan is derived once per run from the requested digit count and
// never changes afterwards.
type PrecisionPlan struct {
	DecimalDigits  uint64
	BitPrecision   uint
	IterationCount uint64
}

// Plan computes the precision plan for decimalDigits. It returns a
// ValidationError for non-positive or unrepresentable digit counts.
func Plan(decimalDigits int) (PrecisionPlan, error) {
	if decimalDigits <= 0 {
		return PrecisionPlan{}, apperrors.ValidationError{
			Field:   "digits",
			Message: fmt.Sprintf("must be positive, got %d", decimalDigits),
		}
	}
	if decimalDigits > MaxDigits {
		return PrecisionPlan{}, apperrors.ValidationError{
			Field:   "digits",
			Message: fmt.Sprintf("must be at most %d, got %d", MaxDigits, decimalDigits),
		}
	}
	d := float64(decimalDigits)
	return PrecisionPlan{
		DecimalDigits:  uint64(decimalDigits),
		BitPrecision:   uint(math.Floor(d*BitsPerDecimalDigit)) + 1,
		IterationCount: uint64(math.Floor(d/DigitsPerTerm)) + 1,
	}, nil
}

// WorkingPrecision is BitPrecision rounded up to whole machine words plus a
// guard word. All fixed-precision arithmetic in a run uses it.
func (p PrecisionPlan) WorkingPrecision() uint {
	words := (p.BitPrecision + bits.UintSize - 1) / bits.UintSize
	return (words + guardWords) * bits.UintSize
}

// SeriesTerms is the number of terms actually summed: IterationCount plus
// guardTerms, so the last requested digit is settled by the series.
func (p PrecisionPlan) SeriesTerms() uint64 {
	return p.IterationCount + guardTerms
}

func (p PrecisionPlan) String() string {
	return fmt.Sprintf("%d digits, %d bits, %d terms", p.DecimalDigits, p.BitPrecision, p.IterationCount)
}
