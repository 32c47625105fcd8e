// Package logging assembles structured slog loggers and attribute helpers
// used across mod6.
//
// It owns the console (tint) and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so run and case code can tag
// log lines with run IDs, case indices and file paths. A no-op logger
// is provided for tests and library callers that pass no logger.
package logging
