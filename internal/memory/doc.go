// Package memory sizes and bounds the memory used by a pi computation: it
// estimates the bit length of series terms, checks a run's estimated peak
// against a configured or system-derived budget, pre-sizes worker scratch
// integers from a single arena, and controls the garbage collector while a
// large run is in flight.
package memory
