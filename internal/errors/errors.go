// Package errors provides categorised CLI errors that carry remediation steps.
//
// A CLIError is what the command layer prints to the user: a category that
// becomes the heading, the message, an optional usage line and the concrete
// steps that fix the problem.
package errors

import (
	stderrors "errors"
)

// ErrorCategory classifies a CLIError for display
type ErrorCategory int

const (
	// Argument covers bad flags and flag values
	Argument ErrorCategory = iota
	// Configuration covers config files, env vars and pattern lists
	Configuration
	// Prerequisite covers missing host facilities such as /proc or a notifier
	Prerequisite
	// Runtime covers failures after the monitor started
	Runtime
)

// String returns the heading shown above the error message
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a user facing error with remediation guidance
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates an Argument error
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an Argument error that shows a usage line
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError creates a Configuration error
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewPrerequisiteError creates a Prerequisite error
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a Runtime error
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap turns err into a CLIError of the given category. A nil err yields nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, Err: err}
}

// IsCLIError reports whether err is or wraps a CLIError
func IsCLIError(err error) bool {
	var cliErr *CLIError
	return stderrors.As(err, &cliErr)
}

// AsCLIError returns the CLIError in err's chain, or nil
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
