package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/appwatch/appwatch/internal/message"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/appwatch/appwatch/internal/process"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeEnum
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key as written in config files
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value

	field string // Configuration struct field
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"apps": {
		Path:        "apps",
		Type:        TypeList,
		Description: "App names, paths or regexes to watch (comma or newline separated)",
		Default:     []string{},
		field:       "Apps",
	},
	"regex": {
		Path:        "regex",
		Type:        TypeBool,
		Description: "Treat apps as case-insensitive regular expressions",
		Default:     false,
		field:       "Regex",
	},
	"interval": {
		Path:        "interval",
		Type:        TypeFloat,
		Description: "Seconds between process table polls (minimum 0.1)",
		Default:     1.0,
		field:       "Interval",
	},
	"debounce": {
		Path:        "debounce",
		Type:        TypeFloat,
		Description: "Seconds during which repeat launches of the same app are suppressed (0 disables)",
		Default:     5.0,
		field:       "Debounce",
	},
	"once_per_pid": {
		Path:        "once_per_pid",
		Type:        TypeBool,
		Description: "Consider each process ID at most once for its lifetime",
		Default:     false,
		field:       "OncePerPID",
	},
	"title": {
		Path:        "title",
		Type:        TypeString,
		Description: "Notification title template ({app}, {pid}, {exe}, {cmdline})",
		Default:     message.DefaultTitle,
		field:       "Title",
	},
	"message": {
		Path:        "message",
		Type:        TypeString,
		Description: "Notification body template ({app}, {pid}, {exe}, {cmdline})",
		Default:     message.DefaultMessage,
		field:       "Message",
	},
	"icon": {
		Path:        "icon",
		Type:        TypeString,
		Description: "Icon name or path passed to the notifier",
		Default:     "",
		field:       "Icon",
	},
	"width": {
		Path:        "width",
		Type:        TypeInt,
		Description: "Dialog width hint in pixels (0 leaves it to the notifier)",
		Default:     0,
		field:       "Width",
	},
	"height": {
		Path:        "height",
		Type:        TypeInt,
		Description: "Dialog height hint in pixels (0 leaves it to the notifier)",
		Default:     0,
		field:       "Height",
	},
	"backend": {
		Path:          "backend",
		Type:          TypeEnum,
		AllowedValues: notify.BackendNames(),
		Description:   "Notification backend, auto probes the platform tools",
		Default:       notify.BackendAuto,
		field:         "Backend",
	},
	"log_level": {
		Path:          "log_level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error"},
		Description:   "Minimum level of log lines written to stderr",
		Default:       "info",
		field:         "LogLevel",
	},
	"show_progress": {
		Path:        "show_progress",
		Type:        TypeBool,
		Description: "Show a status spinner on interactive terminals",
		Default:     true,
		field:       "ShowProgress",
	},
	"proc_root": {
		Path:        "proc_root",
		Type:        TypeString,
		Description: "Mount point of the proc filesystem",
		Default:     process.DefaultMountPoint,
		field:       "ProcRoot",
	},
}

// SortedKeys returns the registry keys in alphabetical order
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for key := range KnownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(value)
	case TypeFloat:
		return parseFloatValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeList:
		return parseListValue(value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

func parseIntValue(value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	if n < 0 {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q (must not be negative)", value)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

func parseFloatValue(value string) (ParsedValue, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid number of seconds: %q (examples: 1, 0.5, 2.5)", value)
	}
	return ParsedValue{Raw: value, Parsed: f, Type: TypeFloat}, nil
}

func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}

// parseListValue splits a comma separated value, dropping empty entries
func parseListValue(value string) (ParsedValue, error) {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return ParsedValue{}, fmt.Errorf("invalid list: %q (expected comma separated values)", value)
	}
	return ParsedValue{Raw: value, Parsed: items, Type: TypeList}, nil
}
