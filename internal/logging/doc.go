// Package logging assembles the structured slog loggers used by pngresize.
//
// It owns the console and JSON handlers, the level and output plumbing, and
// context helpers that tag records with the run ID and pipeline stage. Logs
// are diagnostics for operators; the localized progress lines a user reads
// are written by internal/console, not here.
//
// A no-op logger is provided for tests and for wiring code that cannot fail.
package logging
