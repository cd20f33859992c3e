// Package execshell runs external executables with structured zap logging.
// It backs the GitHub CLI token lookup used as an optional credential source.
package execshell
