package memory

import "math/big"

// ScratchArena hands out word-slices from one block so a worker's term
// integers can be sized once for the largest term of its range instead of
// growing on every multiplication. Exhaustion falls back to the heap.
type ScratchArena struct {
	buf    []big.Word
	offset int
}

// NewScratchArena returns an arena big enough for the scratch integers of
// term lastIndex. Small terms get an empty arena.
func NewScratchArena(lastIndex uint64) *ScratchArena {
	words := TermWords(lastIndex)
	if words < 16 {
		return &ScratchArena{}
	}
	return &ScratchArena{buf: make([]big.Word, words*scratchInts)}
}

// PreSize gives z a zero value backed by at least words of capacity.
// It does nothing when z already has that capacity.
func (a *ScratchArena) PreSize(z *big.Int, words int) {
	if z == nil || words <= 0 || cap(z.Bits()) >= words {
		return
	}
	if a.buf != nil && a.offset+words <= len(a.buf) {
		slice := a.buf[a.offset : a.offset+words : a.offset+words]
		a.offset += words
		z.SetBits(slice[:0])
		return
	}
	z.SetBits(make([]big.Word, 0, words))
}
