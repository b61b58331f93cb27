package shared

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/appwatch/appwatch/internal/config"
	clierrors "github.com/appwatch/appwatch/internal/errors"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names shared by the watch, list and doctor commands
const (
	FlagConfig     = "config"
	FlagDebug      = "debug"
	FlagApps       = "apps"
	FlagRegex      = "regex"
	FlagBackend    = "backend"
	FlagNoProgress = "no-progress"
)

// AddGlobalFlags defines the flags every command accepts
func AddGlobalFlags(pf *pflag.FlagSet) {
	pf.StringP(FlagConfig, "c", "", "Path to a YAML or JSON config file")
	pf.BoolP(FlagDebug, "d", false, "Enable debug logging")
	pf.StringArray(FlagApps, nil, "App names, paths or regexes to watch (comma separated, repeatable)")
	pf.Bool(FlagRegex, false, "Treat --apps entries as case-insensitive regular expressions")
	pf.String(FlagBackend, "auto", "Notification backend ("+strings.Join(notify.BackendNames(), ", ")+")")
}

// flagKeys maps command-line flags to the configuration keys they override
var flagKeys = map[string]string{
	FlagApps:       "apps",
	FlagRegex:      "regex",
	"interval":     "interval",
	"debounce":     "debounce",
	"once-per-pid": "once_per_pid",
	"title":        "title",
	"message":      "message",
	"icon":         "icon",
	"width":        "width",
	"height":       "height",
	FlagBackend:    "backend",
	FlagNoProgress: "show_progress",
}

// Overrides collects the flags the user set explicitly, keyed by config key.
// Flags left at their defaults do not override config files or environment.
func Overrides(flags *pflag.FlagSet) (map[string]interface{}, error) {
	overrides := make(map[string]interface{})
	var firstErr error

	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || firstErr != nil {
			return
		}
		value, err := flagValue(flags, f)
		if err != nil {
			firstErr = fmt.Errorf("reading --%s: %w", f.Name, err)
			return
		}
		if f.Name == FlagNoProgress {
			value = !value.(bool)
		}
		overrides[key] = value
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return overrides, nil
}

func flagValue(flags *pflag.FlagSet, f *pflag.Flag) (interface{}, error) {
	switch f.Value.Type() {
	case "stringArray":
		return flags.GetStringArray(f.Name)
	case "float64":
		return flags.GetFloat64(f.Name)
	case "int":
		return flags.GetInt(f.Name)
	case "bool":
		return flags.GetBool(f.Name)
	default:
		return f.Value.String(), nil
	}
}

// LoadOptions builds config.LoadOptions from the command's flags
func LoadOptions(cmd *cobra.Command) (config.LoadOptions, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	overrides, err := Overrides(cmd.Flags())
	if err != nil {
		return config.LoadOptions{}, err
	}
	return config.LoadOptions{ConfigPath: path, Overrides: overrides}, nil
}

// LoadConfig loads the effective configuration for cmd. Failures are printed
// to the command's error stream and returned with ExitConfigError.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, config.LoadOptions, error) {
	opts, err := LoadOptions(cmd)
	if err != nil {
		return nil, opts, Fail(cmd.ErrOrStderr(), clierrors.NewArgumentError(err.Error()), ExitConfigError)
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, opts, Fail(cmd.ErrOrStderr(), configError(opts.ConfigPath, err), ExitConfigError)
	}
	return cfg, opts, nil
}

// configError turns a config.Load failure into a user facing error
func configError(path string, err error) *clierrors.CLIError {
	if errors.Is(err, config.ErrConfigNotFound) {
		return clierrors.ConfigFileNotFound(path)
	}
	var vErr *config.ValidationError
	if errors.As(err, &vErr) {
		if vErr.Field != "" {
			return clierrors.InvalidConfigValue(err)
		}
		return clierrors.ConfigParseError(vErr.FilePath, err)
	}
	return clierrors.Wrap(err, clierrors.Configuration)
}

// ParsePatterns compiles the configured apps. An invalid or empty pattern
// list is printed and returned with ExitConfigError.
func ParsePatterns(w io.Writer, cfg *config.Configuration) (pattern.Set, error) {
	set, err := pattern.Parse(cfg.Apps, cfg.Regex)
	if err != nil {
		return nil, Fail(w, clierrors.InvalidPattern(err), ExitConfigError)
	}
	if len(set) == 0 {
		return nil, Fail(w, clierrors.NoPatterns(cfg.Apps), ExitConfigError)
	}
	return set, nil
}

// Fail prints cliErr to w and returns it carrying code
func Fail(w io.Writer, cliErr *clierrors.CLIError, code int) error {
	clierrors.FprintError(w, cliErr)
	return WrapExitError(code, cliErr)
}

// NewLogger creates the text logger used by every command. debug wins over level.
func NewLogger(w io.Writer, level string, debug bool) *slog.Logger {
	logLevel := ParseLevel(level)
	if debug {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// ParseLevel maps a log_level value to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
