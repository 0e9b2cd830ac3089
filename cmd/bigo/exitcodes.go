package main

import "fmt"

// Exit codes for the bigo CLI.
const (
	ExitOK             = 0   // Success.
	ExitError          = 1   // Invalid input, configuration or a failed analysis.
	ExitPartialFailure = 2   // Some batch items failed and --strict was given.
	ExitInterrupted    = 130 // Interrupted by SIGINT or SIGTERM.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitPartialFailure:
			msg = "bigo: some items failed"
		case ExitInterrupted:
			msg = "bigo: interrupted"
		default:
			msg = "bigo: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// fail wraps err as a generic command failure.
func fail(err error) *exitCodeError {
	return exitError(ExitError, "bigo: %v", err)
}
