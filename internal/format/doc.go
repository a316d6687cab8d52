// Package format holds the text formatting shared by the CLI and the TUI:
// durations, progress bars with ETA, thousands separators, and rendering of
// π's digit string.
package format
