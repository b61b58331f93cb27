// Package util tests the list and version commands.
// Related: internal/cli/util/list.go, internal/cli/util/version.go
// Tags: util, cli, list, version
package util

import (
	"bytes"
	"testing"

	"github.com/appwatch/appwatch/internal/cli/shared"
	"github.com/spf13/cobra"
)

// executeUtil runs args against a fresh root carrying the global flags and
// the util commands
func executeUtil(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	root := &cobra.Command{Use: "appwatch", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: shared.GroupWatching, Title: "Watching:"})
	root.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})
	shared.AddGlobalFlags(root.PersistentFlags())
	Register(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}
