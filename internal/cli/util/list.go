package util

import (
	"fmt"
	"io"
	"strconv"

	"github.com/appwatch/appwatch/internal/cli/shared"
	clierrors "github.com/appwatch/appwatch/internal/errors"
	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/appwatch/appwatch/internal/process"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// maxCmdlineWidth caps the command line column so rows stay on one line
const maxCmdlineWidth = 60

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List running processes that match the watched apps (ls)",
		Long: `List the processes that currently match the configured app patterns.

Use this to check a pattern before leaving appwatch running: the processes
shown here are the ones that would have triggered a notification had they
started while the watcher was active. With --all every readable process is
listed and the patterns are ignored.`,
		Example: `  # Which running processes does 'fire' match?
  appwatch list --apps fire

  # Check a regular expression
  appwatch list --apps '^(chrome|chromium)$' --regex

  # Everything visible to appwatch
  appwatch list --all`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupWatching,
		RunE:    runList,
	}
	cmd.Flags().Bool("all", false, "List every readable process")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg, _, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	var set pattern.Set
	if !all {
		if set, err = shared.ParsePatterns(stderr, cfg); err != nil {
			return err
		}
	}

	reader, err := process.NewReader(cfg.ProcRoot)
	if err != nil {
		return shared.Fail(stderr, clierrors.ProcessTableUnavailable(cfg.ProcRoot, err), shared.ExitFailure)
	}

	records := process.Snapshot(reader)
	if !all {
		records = matchingRecords(records, set)
	}
	writeProcessTable(cmd.OutOrStdout(), records)
	return nil
}

// matchingRecords keeps the records any pattern in set matches
func matchingRecords(records []process.Record, set pattern.Set) []process.Record {
	matched := make([]process.Record, 0, len(records))
	for _, rec := range records {
		if set.MatchAny(rec.Candidates()...) {
			matched = append(matched, rec)
		}
	}
	return matched
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// writeProcessTable renders records as a table followed by a count line
func writeProcessTable(w io.Writer, records []process.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No matching processes.")
		return
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.PID),
			rec.AppName(),
			rec.Exe,
			clip(rec.Cmdline, maxCmdlineWidth),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PID", "APP", "EXE", "COMMAND").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
	noun := "processes"
	if len(records) == 1 {
		noun = "process"
	}
	fmt.Fprintf(w, "%d %s\n", len(records), noun)
}

// clip shortens s to width runes, marking the cut with "..."
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
