package chudnovsky

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrZeroSum is returned when the partial sums add up to zero, which only
// happens when no term was evaluated.
var ErrZeroSum = errors.New("series sum is zero")

// Reduce adds the partial sums in order, inverts the total and scales it by
// sqrt(10005)·426880. Every element must be present.
func Reduce(partials []*big.Float, prec uint) (*big.Float, error) {
	total := new(big.Float).SetPrec(prec)
	for i, p := range partials {
		if p == nil {
			return nil, fmt.Errorf("partial sum %d is missing", i)
		}
		total.Add(total, p)
	}
	if total.Sign() == 0 {
		return nil, ErrZeroSum
	}

	inv := new(big.Float).SetPrec(prec).Quo(new(big.Float).SetPrec(prec).SetInt64(1), total)

	root := new(big.Float).SetPrec(prec).Sqrt(new(big.Float).SetPrec(prec).SetInt64(sqrtArg))
	scale := new(big.Float).SetPrec(prec).Mul(root, new(big.Float).SetPrec(prec).SetInt64(scaleFactor))

	return inv.Mul(inv, scale), nil
}
