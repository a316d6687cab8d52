// Package progress carries completion fractions from running calculators to
// whatever is displaying them. Calculators report through a ProgressCallback;
// a ProgressSubject fans each report out to registered observers such as a
// channel feeding the spinner or TUI, or a logger.
package progress
