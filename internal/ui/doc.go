// Package ui prints human-facing diagnostics for CLI commands.
//
// Errors and warnings are tagged with their severity and written to standard
// error, while success lines and reports go to standard output. Detailed
// telemetry keeps flowing through the structured zap loggers.
package ui
