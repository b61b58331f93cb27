package config

import (
	"errors"
	"fmt"

	"github.com/appwatch/appwatch/internal/cli/shared"
	cfgpkg "github.com/appwatch/appwatch/internal/config"
	"github.com/appwatch/appwatch/internal/health"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"doc"},
		Short:   "Run health checks for the watcher setup (doc)",
		Long: `Run health checks to verify that appwatch can watch and notify on this system.

This command checks:
  - The process table is readable
  - The configured apps compile to at least one pattern
  - Which notification backends are installed and which one will be used
  - The title and message templates only use known placeholders
  - The config files contain no unknown keys

Each check displays a checkmark if passed, an exclamation mark for warnings
or an X with an error message if failed.`,
		Example: `  # Check the current setup
  appwatch doctor

  # Check a pattern and backend before using them
  appwatch doctor --apps firefox --backend zenity`,
		GroupID: shared.GroupConfiguration,
		Args:    cobra.NoArgs,
		RunE:    runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, opts, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	report := health.RunHealthChecks(health.Options{
		Config:      cfg,
		Backends:    notify.Probe(notify.NewConsole(out, false)),
		ConfigFiles: cfgpkg.SourcePaths(opts),
	})
	fmt.Fprint(out, health.FormatReport(report))

	if !report.Passed {
		return shared.WrapExitError(shared.ExitFailure, errors.New("health checks failed"))
	}
	return nil
}
