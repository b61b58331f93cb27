package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/appwatch/appwatch/internal/cli/shared"
	cfgpkg "github.com/appwatch/appwatch/internal/config"
	clierrors "github.com/appwatch/appwatch/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the user config file.

By default, sets the value in the user-level config
($XDG_CONFIG_HOME/appwatch/config.yml, usually ~/.config/appwatch/config.yml).
With --config the value is written to that YAML file instead.

The value type is inferred from the key and validated before the file is
written. Comments and key order in the file are kept.`,
		Example: `  # Watch Firefox and VS Code
  appwatch config set apps firefox,code

  # Lower the debounce window
  appwatch config set debounce 2.5

  # Force the console backend in a specific file
  appwatch config set backend console --config ./appwatch.yml`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the current value of a configuration key.

Shows the effective value and where it came from.`,
		Example: `  # Get the watched apps
  appwatch config get apps

  # Check which backend will be tried
  appwatch config get backend`,
		Args: cobra.ExactArgs(1),
		RunE: runConfigGet,
	}
}

func newConfigKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List all available configuration keys",
		Long:  `Display all valid configuration keys with their types, defaults and descriptions.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigKeys,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	out := cmd.OutOrStdout()

	if _, err := cfgpkg.GetKeySchema(key); err != nil {
		return shared.Fail(cmd.ErrOrStderr(), unknownKeyError(key), shared.ExitConfigError)
	}

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		return shared.Fail(cmd.ErrOrStderr(),
			clierrors.NewArgumentError(fmt.Sprintf("setting %s: %v", key, err), "Run 'appwatch config keys' for the accepted values"),
			shared.ExitConfigError)
	}

	fmt.Fprintf(out, "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if _, err := cfgpkg.GetKeySchema(key); err != nil {
		return shared.Fail(cmd.ErrOrStderr(), unknownKeyError(key), shared.ExitConfigError)
	}

	cfg, opts, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %s (%s)\n", key, formatValue(cfg.Values()[key]), valueSource(key, opts))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		typeInfo := schema.Type.String()
		if schema.Type == cfgpkg.TypeEnum {
			typeInfo = fmt.Sprintf("enum (%s)", strings.Join(schema.AllowedValues, ", "))
		}
		fmt.Fprintf(out, "  %-16s %s\n", key, typeInfo)
		fmt.Fprintf(out, "    %s\n", schema.Description)
		fmt.Fprintf(out, "    env: %s%s, default: %s\n", cfgpkg.EnvPrefix, strings.ToUpper(key), formatValue(schema.Default))
		fmt.Fprintln(out)
	}

	return nil
}

// resolveConfigPath picks the file 'config set' writes: --config when given,
// otherwise the user config
func resolveConfigPath(cmd *cobra.Command) (filePath, scope string, err error) {
	if path, _ := cmd.Flags().GetString(shared.FlagConfig); path != "" {
		return path, "explicit", nil
	}

	userPath, err := cfgpkg.UserConfigPath()
	if err != nil {
		return "", "", fmt.Errorf("getting user config path: %w", err)
	}
	return userPath, "user", nil
}

// valueSource names the highest priority source that sets key
func valueSource(key string, opts cfgpkg.LoadOptions) string {
	if _, ok := opts.Overrides[key]; ok {
		return "from command line"
	}
	if _, ok := os.LookupEnv(cfgpkg.EnvPrefix + strings.ToUpper(key)); ok {
		return "from environment"
	}
	if opts.ConfigPath != "" && fileSetsKey(opts.ConfigPath, key) {
		return "from " + opts.ConfigPath
	}
	if userPath, err := cfgpkg.UserConfigPath(); err == nil && fileSetsKey(userPath, key) {
		return "from user config"
	}
	return "default"
}

// fileSetsKey reports whether the YAML or JSON file at path has a top-level key
func fileSetsKey(path, key string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return false
	}
	return cfgpkg.GetValue(&root, key) != nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case string:
		if val == "" {
			return `""`
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}

func unknownKeyError(key string) *clierrors.CLIError {
	return clierrors.NewArgumentError(
		fmt.Sprintf("unknown configuration key: %q", key),
		"Valid keys: "+strings.Join(cfgpkg.SortedKeys(), ", "),
	)
}
