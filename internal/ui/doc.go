// Package ui holds the color themes shared by the CLI output and the TUI
// dashboard. The active theme is process-wide and honors --no-color and
// the NO_COLOR environment variable.
package ui
