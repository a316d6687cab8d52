// Package chudnovsky computes π to a requested number of decimal digits by
// summing the Chudnovsky series in parallel.
//
// A run has four stages:
//
//   - Plan maps the requested digit count to a bit precision and the number
//     of series terms needed.
//   - Partition splits the term indices [0, iterations) into one contiguous
//     range per worker, with sizes differing by at most one.
//   - Each worker evaluates its range with an Evaluator, accumulating exact
//     integer terms into a private fixed-precision partial sum.
//   - Reduce waits for every partial sum, adds them in range order, inverts
//     the total and scales it by sqrt(10005)·426880.
//
// Two calculators are registered, differing only in how they apply the
// term's alternating sign: "parity" negates C^(3k) when 3k is odd, and
// "negbase" raises -640320 to the 3k-th power. They produce bit-identical
// results.
package chudnovsky
