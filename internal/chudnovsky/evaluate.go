package chudnovsky

import (
	"context"
	"fmt"
	"math"
	"math/big"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/progress"
)

// Evaluator sums series terms over a range at a fixed precision.
type Evaluator struct {
	Sign      SignMode
	Precision uint
	// TermByteLimit bounds the scratch memory of the largest term in a
	// range. Zero means unbounded.
	TermByteLimit uint64
}

// Evaluate returns the sum of terms Start..End-1 rounded to e.Precision.
// An empty range yields zero. Evaluation stops between terms once ctx is
// done. Each finished term is counted on counter when it is non-nil.
func (e Evaluator) Evaluate(ctx context.Context, r WorkRange, counter *progress.TermCounter) (*big.Float, error) {
	if e.Precision == 0 {
		return nil, apperrors.ValidationError{Field: "precision", Message: "must be positive"}
	}
	sum := new(big.Float).SetPrec(e.Precision)
	if r.Empty() {
		return sum, nil
	}

	last := r.End - 1
	if last > memory.MaxTermIndex {
		return nil, apperrors.MemoryError{Requested: math.MaxUint64, Limit: e.TermByteLimit}
	}
	if e.TermByteLimit > 0 {
		if need := memory.TermBytes(last); need > e.TermByteLimit {
			return nil, fmt.Errorf("term %d: %w", last, apperrors.MemoryError{Requested: need, Limit: e.TermByteLimit})
		}
	}

	s := acquireState()
	defer releaseState(s)
	s.presize(memory.NewScratchArena(last), memory.TermWords(last))

	for k := r.Start; k < r.End; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum.Add(sum, s.term(k, e.Sign, e.Precision))
		if counter != nil {
			counter.Add(1)
		}
	}
	return sum, nil
}
