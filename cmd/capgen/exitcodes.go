package main

import "fmt"

// Exit codes for capgen CLI.
const (
	ExitOK              = 0 // All requested outputs written.
	ExitFailure         = 1 // Validation failure, or at least one destination failed.
	ExitSkippedExisting = 2 // Destinations skipped without --force; the rest were written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
