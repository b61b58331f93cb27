package cli

import "github.com/appwatch/appwatch/internal/cli/shared"

// Exit codes for CLI commands (re-exported from shared)
const (
	ExitSuccess     = shared.ExitSuccess
	ExitFailure     = shared.ExitFailure
	ExitConfigError = shared.ExitConfigError
)

// ExitCode returns the process exit code for an error returned by Execute
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
