// Package parallel runs indexed units of work concurrently and collects the
// first failure. It is the fan-out layer under the series evaluator: every
// worker owns one index, results are written to caller-owned slots, and the
// caller reads them only after Run returns.
package parallel
