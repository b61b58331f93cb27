package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/appwatch/appwatch/internal/cli/shared"
	cfgpkg "github.com/appwatch/appwatch/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage appwatch configuration",
		Long: `Manage appwatch configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags
  2. Environment variables (APPWATCH_*)
  3. File given with --config (YAML or JSON)
  4. User config ($XDG_CONFIG_HOME/appwatch/config.yml)
  5. Built-in defaults

While appwatch runs, edits to the config files are picked up and the new
app patterns replace the old ones.`,
		Example: `  # Show current configuration
  appwatch config show

  # Show configuration as JSON
  appwatch config show --json

  # Watch VS Code from now on
  appwatch config set apps code

  # List every key
  appwatch config keys`,
		GroupID: shared.GroupConfiguration,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current effective configuration",
		Long: `Display the current effective configuration values.

Shows the merged result of defaults, config files, environment variables and
flags. Use --json to print JSON instead of YAML.`,
		Example: `  # Show configuration in YAML format (default)
  appwatch config show

  # Show configuration in JSON format
  appwatch config show --json`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	show.Flags().Bool("json", false, "Output in JSON format")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the user config file location",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	cmd.AddCommand(show, path, newConfigSetCmd(), newConfigGetCmd(), newConfigKeysCmd())
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	useJSON, _ := cmd.Flags().GetBool("json")

	cfg, opts, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	if !useJSON {
		writeSources(out, cfgpkg.SourcePaths(opts))
	}
	return writeValues(out, cfg.Values(), useJSON)
}

// writeSources prints the files the configuration was read from as YAML comments
func writeSources(out io.Writer, paths []string) {
	fmt.Fprintf(out, "# Configuration sources\n")
	if len(paths) == 0 {
		fmt.Fprintf(out, "#   (defaults only)\n")
	}
	for _, p := range paths {
		fmt.Fprintf(out, "#   %s\n", p)
	}
	fmt.Fprintln(out)
}

func writeValues(out io.Writer, values map[string]interface{}, useJSON bool) error {
	if useJSON {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	userPath, err := cfgpkg.UserConfigPath()
	if err != nil {
		return fmt.Errorf("getting user config path: %w", err)
	}

	state := "exists"
	if _, err := os.Stat(userPath); err != nil {
		state = "not created yet"
	}
	fmt.Fprintf(out, "%s (%s)\n", userPath, state)
	return nil
}
