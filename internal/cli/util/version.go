package util

import (
	"fmt"
	"io"
	"runtime"

	"github.com/appwatch/appwatch/internal/build"
	"github.com/appwatch/appwatch/internal/cli/shared"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/appwatch/appwatch"

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, Go version and platform information for appwatch",
		Example: `  # Show version info
  appwatch version

  # Plain output (for scripts)
  appwatch version --plain`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupConfiguration,
		Run: func(cmd *cobra.Command, args []string) {
			plain, _ := cmd.Flags().GetBool("plain")
			if plain {
				printPlainVersion(cmd.OutOrStdout())
			} else {
				printPrettyVersion(cmd.OutOrStdout())
			}
		},
	}
	cmd.Flags().Bool("plain", false, "Plain output without formatting")
	return cmd
}

type versionField struct {
	label string
	value string
}

func versionInfo() []versionField {
	return []versionField{
		{"Version", build.Version},
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "appwatch %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints a colored label/value listing
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()

	fmt.Fprintf(w, "\n  %s %s\n\n", cyan("appwatch"), dim("desktop alerts when watched applications start"))
	for _, f := range versionInfo() {
		fmt.Fprintf(w, "  %s  %s\n", yellow(fmt.Sprintf("%10s", f.label)), white(f.value))
	}
	if build.IsDevBuild() {
		fmt.Fprintf(w, "\n  %s\n", dim("development build, not a tagged release"))
	}
	fmt.Fprintf(w, "\n  %s\n\n", dim(SourceURL))
}
