// Package orchestration runs one or more π calculators concurrently,
// forwards their progress to a reporter and cross-checks the digits they
// produce. Presentation is reached only through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
