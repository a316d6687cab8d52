package chudnovsky

import (
	"math/big"

	"github.com/agbru/picalc/internal/memory"
)

// SignMode selects how the alternating sign of the series is applied.
type SignMode int

const (
	// SignByParity raises 640320 to 3k and negates the power when 3k is odd.
	SignByParity SignMode = iota
	// SignByNegativeBase raises -640320 to 3k directly.
	SignByNegativeBase
)

func (m SignMode) String() string {
	switch m {
	case SignByParity:
		return "parity"
	case SignByNegativeBase:
		return "negbase"
	}
	return "unknown"
}

var (
	bigA    = big.NewInt(termA)
	bigB    = big.NewInt(termB)
	bigC    = big.NewInt(termC)
	bigNegC = big.NewInt(-termC)
)

// termState is one worker's scratch space. The exact integers are reused
// across terms; nothing in it outlives the worker's range.
type termState struct {
	sixK   *big.Int // (6k)!
	threeK *big.Int // (3k)!
	kFact  *big.Int // k!
	kCubed *big.Int // (k!)³
	cPow   *big.Int // ±C^(3k)
	exp    *big.Int
	num    *big.Int
	den    *big.Int

	fNum *big.Float
	fDen *big.Float
	quot *big.Float
}

func newTermState() *termState {
	return &termState{
		sixK:   new(big.Int),
		threeK: new(big.Int),
		kFact:  new(big.Int),
		kCubed: new(big.Int),
		cPow:   new(big.Int),
		exp:    new(big.Int),
		num:    new(big.Int),
		den:    new(big.Int),
		fNum:   new(big.Float),
		fDen:   new(big.Float),
		quot:   new(big.Float),
	}
}

// presize gives each large integer enough capacity for the biggest term the
// worker will evaluate.
func (s *termState) presize(arena *memory.ScratchArena, words int) {
	for _, z := range []*big.Int{s.sixK, s.threeK, s.kFact, s.kCubed, s.cPow, s.num, s.den} {
		arena.PreSize(z, words)
	}
}

// term returns term k rounded to prec bits. The result aliases s.quot and is
// overwritten by the next call.
func (s *termState) term(k uint64, sign SignMode, prec uint) *big.Float {
	s.exact(k, sign)
	s.fNum.SetPrec(prec).SetInt(s.num)
	s.fDen.SetPrec(prec).SetInt(s.den)
	return s.quot.SetPrec(prec).Quo(s.fNum, s.fDen)
}
