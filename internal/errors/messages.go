package errors

import (
	"fmt"
	"strings"

	"github.com/appwatch/appwatch/internal/pattern"
)

const appsUsage = `appwatch --apps "firefox,chrome" [--regex] [--debounce 5]`

// NoPatterns reports an apps list that produced no usable pattern
func NoPatterns(apps []string) *CLIError {
	msg := "no valid app patterns provided"
	if joined := strings.TrimSpace(strings.Join(apps, ",")); joined != "" {
		msg = fmt.Sprintf("no valid app patterns in %q", joined)
	}
	return &CLIError{
		Category: Configuration,
		Message:  msg,
		Usage:    appsUsage,
		Remediation: []string{
			"Pass at least one non-empty name, path or regex with --apps",
			"Or set apps in the config file or the APPWATCH_APPS environment variable",
		},
		Err: pattern.ErrNoPatterns,
	}
}

// InvalidPattern reports a pattern that failed to compile
func InvalidPattern(err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  err.Error(),
		Usage:    appsUsage,
		Remediation: []string{
			"Check the regular expression syntax (RE2, see https://github.com/google/re2/wiki/Syntax)",
			"Drop --regex to match the text as a plain substring",
		},
		Err: err,
	}
}

// ConfigFileNotFound reports an explicitly requested config file that does not exist
func ConfigFileNotFound(path string) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("config file not found: %s", path),
		Remediation: []string{
			"Check the path given with --config",
			"Omit --config to use defaults and ~/.config/appwatch/config.yml",
		},
	}
}

// ConfigParseError reports a config file that could not be loaded
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load config %s: %v", path, err),
		Remediation: []string{
			"Fix the syntax error reported above",
			"Config files may be YAML (.yml, .yaml) or JSON (.json)",
		},
		Err: err,
	}
}

// InvalidConfigValue reports a setting that failed validation
func InvalidConfigValue(err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  err.Error(),
		Remediation: []string{
			"Run 'appwatch doctor' to see the effective configuration",
		},
		Err: err,
	}
}

// InvalidFlagValue reports a flag whose value is out of range
func InvalidFlagValue(flag, value, reason string) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("invalid value %q for --%s: %s", value, flag, reason),
		Usage:    appsUsage,
		Remediation: []string{
			"Run 'appwatch --help' for the accepted values",
		},
	}
}

// BackendUnavailable reports a forced notification backend that cannot be used
func BackendUnavailable(name string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  err.Error(),
		Remediation: []string{
			fmt.Sprintf("Install %s or make sure a graphical session is running", name),
			"Use --backend auto to pick the best available backend",
			"Run 'appwatch doctor' to list backends detected on this system",
		},
		Err: err,
	}
}

// ProcessTableUnavailable reports a host without a readable proc filesystem
func ProcessTableUnavailable(path string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("cannot read the process table at %s", path),
		Remediation: []string{
			"appwatch reads processes from the Linux proc filesystem",
			"Set proc_root in the config file if proc is mounted elsewhere",
		},
		Err: err,
	}
}
