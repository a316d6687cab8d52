// Package logging provides the structured logging interface used by the pi
// calculator. Components depend on Logger; the default backend is zerolog,
// with a standard-library adapter for callers that already own a *log.Logger.
package logging
