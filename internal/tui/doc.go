// Package tui is the --tui dashboard: one progress bar per variant,
// process and system resource sparklines, an event log and the final
// digits. It runs the same orchestration as the CLI and receives progress
// and results as bubbletea messages.
package tui
