// appwatch - desktop alerts when watched applications start
// Source: https://github.com/appwatch/appwatch

// Package cli provides the Cobra-based command line for appwatch.
// The root command runs the watcher; list, doctor, config and version are
// helpers for checking a setup before leaving it running.
package cli

import (
	"fmt"
	"os"

	cliconfig "github.com/appwatch/appwatch/internal/cli/config"
	"github.com/appwatch/appwatch/internal/cli/shared"
	"github.com/appwatch/appwatch/internal/cli/util"
	clierrors "github.com/appwatch/appwatch/internal/errors"
	"github.com/appwatch/appwatch/internal/message"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupWatching      = shared.GroupWatching
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appwatch",
		Short: "Pop up a notification when a watched application starts",
		Long: `appwatch polls the process table and shows a desktop notification when a
process matching one of the watched patterns appears.

Patterns match case-insensitively against the process name, executable path
and command line. Repeat launches of the same app inside the debounce window
are suppressed.`,
		Example: `  # Watch Firefox and VS Code
  appwatch --apps firefox,code

  # Regular expressions, one alert per process
  appwatch --apps '^chrom(e|ium)$' --regex --once-per-pid

  # Custom text (placeholders: {app} {pid} {exe} {cmdline})
  appwatch --apps vlc --title 'Started {app}' --message 'pid {pid}'

  # Check the setup without watching
  appwatch doctor --apps firefox`,
		Args:          noPositionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWatch,
	}

	cmd.AddGroup(&cobra.Group{ID: GroupWatching, Title: "Watching:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	cmd.SetHelpCommandGroupID(GroupConfiguration)
	cmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	shared.AddGlobalFlags(cmd.PersistentFlags())

	// Watch flags
	f := cmd.Flags()
	f.Float64("interval", 1.0, "Seconds between process table polls (minimum 0.1)")
	f.Float64("debounce", 5.0, "Seconds during which repeat launches of the same app are ignored (0 disables)")
	f.Bool("once-per-pid", false, "Alert at most once per process ID")
	f.String("title", message.DefaultTitle, "Notification title template")
	f.String("message", message.DefaultMessage, "Notification message template")
	f.String("icon", "", "Icon name or path for the notification")
	f.Int("width", 0, "Dialog width hint in pixels")
	f.Int("height", 0, "Dialog height hint in pixels")
	f.Bool("once", false, "Run a single poll cycle and exit")
	f.Bool(shared.FlagNoProgress, false, "Do not show the status spinner")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return shared.Fail(c.ErrOrStderr(),
			clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(), "Run 'appwatch --help' for the accepted flags"),
			shared.ExitConfigError)
	})

	// Register commands from subpackages
	util.Register(cmd)
	cliconfig.Register(cmd)

	return cmd
}

// noPositionalArgs rejects app names passed without --apps
func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return shared.Fail(cmd.ErrOrStderr(),
		clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unexpected argument %q", args[0]),
			cmd.UseLine(),
			fmt.Sprintf("Pass apps with --apps, e.g. appwatch --apps %s", args[0]),
			"Run 'appwatch --help' for the list of commands",
		),
		shared.ExitConfigError)
}

// Execute runs the root command. Errors that were not already printed are
// written to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.IsReported(err) {
		fmt.Fprint(os.Stderr, clierrors.FormatSimpleError(err, clierrors.Runtime))
	}
	return err
}
