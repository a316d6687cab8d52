package memory

import "math"

// log2C is log2(640320), the bits contributed by each factor of the
// series' C constant.
const log2C = 19.288433547

// bitsPerWord is the size of a big.Word in bits on 64-bit hosts.
const bitsPerWord = 64

// scratchInts is the number of exact integers a worker keeps alive while
// evaluating one term: the three factorials, the cubed k!, the power of C,
// the numerator and the denominator.
const scratchInts = 7

// floatsPerWorker counts the fixed-precision reals a worker holds: its
// accumulator, the term quotient and the two converted operands.
const floatsPerWorker = 4

// MaxTermIndex is the largest term index whose factorial arguments fit
// in an int64.
const MaxTermIndex = math.MaxInt64 / 6

// FactorialBits approximates log2(n!) with Stirling's formula, rounded up.
func FactorialBits(n uint64) uint64 {
	if n < 2 {
		return 1
	}
	x := float64(n)
	bits := x*math.Log2(x/math.E) + 0.5*math.Log2(2*math.Pi*x)
	return uint64(math.Ceil(bits)) + 1
}

// TermBits estimates the combined bit length of the exact numerator and
// denominator of term k.
func TermBits(k uint64) uint64 {
	if k == 0 {
		return 64
	}
	num := FactorialBits(6*k) + 32 + uint64(math.Log2(float64(k))) + 1
	den := FactorialBits(3*k) + 3*FactorialBits(k) + uint64(math.Ceil(3*float64(k)*log2C))
	return num + den
}

// TermWords is TermBits rounded up to whole words.
func TermWords(k uint64) int {
	return int((TermBits(k) + bitsPerWord - 1) / bitsPerWord)
}

// TermBytes estimates the scratch memory a worker needs for term k.
func TermBytes(k uint64) uint64 {
	return uint64(TermWords(k)) * scratchInts * (bitsPerWord / 8)
}

// FloatBytes is the size of one fixed-precision real at precisionBits.
func FloatBytes(precisionBits uint) uint64 {
	return (uint64(precisionBits) + bitsPerWord - 1) / bitsPerWord * (bitsPerWord / 8)
}

// EstimatePeak estimates the peak bytes of a run in which one worker per
// element of lastIndices evaluates terms up to and including that index,
// all at precisionBits. Terms grow with k, so each worker's peak is its last
// term. A negative entry marks an empty range.
func EstimatePeak(lastIndices []int64, precisionBits uint) uint64 {
	var total uint64
	fb := FloatBytes(precisionBits)
	for _, k := range lastIndices {
		total += floatsPerWorker * fb
		if k >= 0 {
			total += TermBytes(uint64(k))
		}
	}
	// Reducer: sum, sqrt(10005), scale, quotient.
	return total + 4*fb
}
