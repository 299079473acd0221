// Package logging provides structured logging utilities for pulse components.
//
// It wraps the standard library slog package with service defaults: JSON
// output to stderr, module and version attributes on every record,
// LOG_LEVEL environment configuration, and source location tracking at
// debug level.
//
// Typical usage, early in main():
//
//	logging.SetDefaultStructuredLogger("pulsed", version)
//	slog.Info("starting", "port", 8080)
//
// Supported levels (case-insensitive): DEBUG, INFO (default), WARN/WARNING,
// ERROR.
package logging
