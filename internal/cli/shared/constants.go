// Package shared provides constants and helpers used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"
)

// Command group IDs for organizing help output
const (
	GroupWatching      = "watching"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

// exitError is an error that carries an exit code. Its cause, if any, has
// already been reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// WrapExitError attaches an exit code to an error that was already printed.
func WrapExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}

// IsReported reports whether err carries an exit code, meaning its message
// has already been written to the user.
func IsReported(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitFailure
}
