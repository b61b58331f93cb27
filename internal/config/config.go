package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of environment variables read as configuration
	EnvPrefix = "APPWATCH_"

	// MinInterval is the shortest poll interval in seconds
	MinInterval = 0.1
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Configuration represents the appwatch settings after all sources are merged
type Configuration struct {
	Apps         []string `koanf:"apps"`
	Regex        bool     `koanf:"regex"`
	Interval     float64  `koanf:"interval" validate:"finite"`
	Debounce     float64  `koanf:"debounce" validate:"finite"`
	OncePerPID   bool     `koanf:"once_per_pid"`
	Title        string   `koanf:"title"`
	Message      string   `koanf:"message"`
	Icon         string   `koanf:"icon"`
	Width        int      `koanf:"width" validate:"gte=0"`
	Height       int      `koanf:"height" validate:"gte=0"`
	Backend      string   `koanf:"backend" validate:"required,oneof=auto zenity notify-send osascript powershell console"`
	LogLevel     string   `koanf:"log_level" validate:"required,oneof=debug info warn error"`
	ShowProgress bool     `koanf:"show_progress"`
	ProcRoot     string   `koanf:"proc_root" validate:"required"`
}

// LoadOptions selects the sources merged by Load
type LoadOptions struct {
	// ConfigPath is the --config file. A missing file is an error.
	ConfigPath string
	// SkipUserConfig ignores the per-user config file
	SkipUserConfig bool
	// Overrides are applied last, normally the flags changed on the command line
	Overrides map[string]interface{}
}

// Load loads configuration from the user file, the explicit file and the environment.
// Priority: Overrides > Environment variables > --config file > User config > Defaults
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if !opts.SkipUserConfig {
		if userPath, err := UserConfigPath(); err == nil {
			if _, err := os.Stat(userPath); err == nil {
				if err := loadFile(k, userPath); err != nil {
					return nil, fmt.Errorf("failed to load user config: %w", err)
				}
			}
		}
	}

	if opts.ConfigPath != "" {
		path := expandHomePath(opts.ConfigPath)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range opts.Overrides {
		k.Set(key, value)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateStruct(&cfg, opts.ConfigPath); err != nil {
		return nil, err
	}

	cfg.ProcRoot = expandHomePath(cfg.ProcRoot)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return &cfg, nil
}

// loadFile merges one config file into k, choosing the parser by extension
func loadFile(k *koanf.Koanf, path string) error {
	if isJSON(path) {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return &ValidationError{FilePath: path, Message: err.Error()}
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	// an empty YAML document is a valid config that sets nothing
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// validateStruct runs the validator tags and reports the first failing field
func validateStruct(cfg *Configuration, filePath string) error {
	if filePath == "" {
		filePath = "config"
	}
	v := validator.New()
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		return fmt.Errorf("registering finite validation: %w", err)
	}
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			FilePath: filePath,
			Field:    keyForField(fe.StructField()),
			Message:  describeFieldError(fe),
		}
	}
	return fmt.Errorf("config validation failed: %w", err)
}

// isFinite rejects NaN and infinities, which have no duration equivalent
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "oneof":
		return fmt.Sprintf("%q is not one of: %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "finite":
		return fmt.Sprintf("must be a finite number of seconds, got %v", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// keyForField maps a struct field name back to its koanf key
func keyForField(field string) string {
	for key, schema := range KnownKeys {
		if schema.field == field {
			return key
		}
	}
	return field
}

// Values returns the settings keyed the way config files spell them
func (c *Configuration) Values() map[string]interface{} {
	return map[string]interface{}{
		"apps":          c.Apps,
		"regex":         c.Regex,
		"interval":      c.Interval,
		"debounce":      c.Debounce,
		"once_per_pid":  c.OncePerPID,
		"title":         c.Title,
		"message":       c.Message,
		"icon":          c.Icon,
		"width":         c.Width,
		"height":        c.Height,
		"backend":       c.Backend,
		"log_level":     c.LogLevel,
		"show_progress": c.ShowProgress,
		"proc_root":     c.ProcRoot,
	}
}

// PollInterval returns the poll interval with the 0.1s floor applied
func (c *Configuration) PollInterval() time.Duration {
	return seconds(max(c.Interval, MinInterval))
}

// DebounceWindow returns the debounce window with negative values clamped to zero
func (c *Configuration) DebounceWindow() time.Duration {
	return seconds(max(c.Debounce, 0))
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// UserConfigPath returns $XDG_CONFIG_HOME/appwatch/config.yml,
// falling back to ~/.config/appwatch/config.yml
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "appwatch", "config.yml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "appwatch", "config.yml"), nil
}

// SourcePaths lists the config files Load would read that exist on disk,
// in load order. Used to decide what to watch for hot reload.
func SourcePaths(opts LoadOptions) []string {
	var paths []string
	if !opts.SkipUserConfig {
		if userPath, err := UserConfigPath(); err == nil {
			if _, err := os.Stat(userPath); err == nil {
				paths = append(paths, userPath)
			}
		}
	}
	if opts.ConfigPath != "" {
		path := expandHomePath(opts.ConfigPath)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}

// envTransform converts environment variable names to config keys
// Example: APPWATCH_ONCE_PER_PID -> once_per_pid
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
