package chudnovsky

import (
	"math/big"
	"sync"
)

// maxPooledWords bounds the capacity of integers kept in the pool so one
// huge run does not pin its scratch memory for the rest of the process.
const maxPooledWords = 1 << 16

var statePool = sync.Pool{
	New: func() any { return newTermState() },
}

// acquireState returns a term state from the pool.
func acquireState() *termState {
	return statePool.Get().(*termState)
}

// releaseState returns s to the pool unless it has grown too large. It is
// safe to call with nil.
func releaseState(s *termState) {
	if s == nil {
		return
	}
	for _, z := range []*big.Int{s.sixK, s.threeK, s.kFact, s.kCubed, s.cPow, s.num, s.den} {
		if cap(z.Bits()) > maxPooledWords {
			return
		}
	}
	statePool.Put(s)
}
