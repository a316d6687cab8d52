package chudnovsky

import (
	"fmt"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// WorkRange is the half-open interval of term indices [Start, End) assigned
// to one worker.
type WorkRange struct {
	Start uint64
	End   uint64
}

// Len returns the number of terms in the range.
func (r WorkRange) Len() uint64 { return r.End - r.Start }

// Empty reports whether the range holds no terms.
func (r WorkRange) Empty() bool { return r.End <= r.Start }

func (r WorkRange) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// Partition splits [0, iterations) into workers contiguous ranges in
// increasing order. Every range gets iterations/workers terms and the first
// iterations%workers ranges get one more. With zero iterations every range
// is empty.
func Partition(iterations uint64, workers int) ([]WorkRange, error) {
	if workers <= 0 {
		return nil, apperrors.ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be at least 1, got %d", workers),
		}
	}
	w := uint64(workers)
	base, rem := iterations/w, iterations%w
	ranges := make([]WorkRange, workers)
	var start uint64
	for i := range ranges {
		size := base
		if uint64(i) < rem {
			size++
		}
		ranges[i] = WorkRange{Start: start, End: start + size}
		start += size
	}
	return ranges, nil
}
