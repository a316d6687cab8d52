//go:build gmp

package chudnovsky

import (
	"math/big"

	"github.com/ncw/gmp"
)

var (
	gmpA    = gmp.NewInt(termA)
	gmpB    = gmp.NewInt(termB)
	gmpC    = gmp.NewInt(termC)
	gmpNegC = gmp.NewInt(-termC)
)

// exact computes the term's integers with GMP and copies them into the
// math/big fields of s.
func (s *termState) exact(k uint64, sign SignMode) {
	ki := int64(k)
	sixK := new(gmp.Int).MulRange(1, 6*ki)
	threeK := new(gmp.Int).MulRange(1, 3*ki)
	kFact := new(gmp.Int).MulRange(1, ki)
	kCubed := new(gmp.Int).Mul(kFact, kFact)
	kCubed.Mul(kCubed, kFact)

	exp := new(gmp.Int).SetUint64(3 * k)
	var cPow *gmp.Int
	switch sign {
	case SignByNegativeBase:
		cPow = new(gmp.Int).Exp(gmpNegC, exp, nil)
	default:
		cPow = new(gmp.Int).Exp(gmpC, exp, nil)
		if (3*k)%2 == 1 {
			cPow.Neg(cPow)
		}
	}

	num := new(gmp.Int).SetUint64(k)
	num.Mul(num, gmpB)
	num.Add(num, gmpA)
	num.Mul(num, sixK)

	den := new(gmp.Int).Mul(threeK, kCubed)
	den.Mul(den, cPow)

	toBig(s.num, num)
	toBig(s.den, den)
}

func toBig(dst *big.Int, src *gmp.Int) {
	dst.SetBytes(src.Bytes())
	if src.Sign() < 0 {
		dst.Neg(dst)
	}
}
