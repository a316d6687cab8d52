//go:build !gmp

package chudnovsky

// exact sets s.num to (6k)!·(A+Bk) and s.den to (3k)!·(k!)³·(±C)^(3k).
func (s *termState) exact(k uint64, sign SignMode) {
	ki := int64(k)
	s.sixK.MulRange(1, 6*ki)
	s.threeK.MulRange(1, 3*ki)
	s.kFact.MulRange(1, ki)
	s.kCubed.Mul(s.kFact, s.kFact)
	s.kCubed.Mul(s.kCubed, s.kFact)

	s.exp.SetUint64(3 * k)
	switch sign {
	case SignByNegativeBase:
		s.cPow.Exp(bigNegC, s.exp, nil)
	default:
		s.cPow.Exp(bigC, s.exp, nil)
		if (3*k)%2 == 1 {
			s.cPow.Neg(s.cPow)
		}
	}

	s.num.SetUint64(k)
	s.num.Mul(s.num, bigB)
	s.num.Add(s.num, bigA)
	s.num.Mul(s.num, s.sixK)

	s.den.Mul(s.threeK, s.kCubed)
	s.den.Mul(s.den, s.cPow)
}
