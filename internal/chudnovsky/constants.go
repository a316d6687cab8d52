package chudnovsky

const (
	// BitsPerDecimalDigit is log2(10).
	BitsPerDecimalDigit = 3.32192809488736234787

	// DigitsPerTerm is the number of decimal digits each series term adds,
	// log10(640320³/1728).
	DigitsPerTerm = 14.1816474627254776555

	// DefaultDigits is the digit count used when none is requested.
	DefaultDigits = 1000

	// DefaultMaxWorkers caps the worker count resolved from available
	// parallelism.
	DefaultMaxWorkers = 32
)

// Series constants.
const (
	termA = 13591409
	termB = 545140134
	termC = 640320

	sqrtArg     = 10005
	scaleFactor = 426880
)
