// Package cli tests the root command and the watch loop wiring.
// Related: internal/cli/root.go, internal/cli/watch.go
// Tags: cli, root, watch, flags, exit-codes
package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/appwatch/appwatch/internal/testutil"
)

// syncBuffer is a bytes.Buffer safe for the monitor goroutine to write while
// the test reads
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// execute runs args against a fresh root command
func execute(ctx context.Context, args ...string) (stdout, stderr *syncBuffer, err error) {
	stdout, stderr = &syncBuffer{}, &syncBuffer{}
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return stdout, stderr, err
}

// fakeHost isolates configuration and points proc_root at a fake table
// running vlc (pid 100) and bash (pid 200)
func fakeHost(t *testing.T) string {
	t.Helper()

	configHome := testutil.IsolateConfig(t)
	procRoot := testutil.WriteProcTree(t, map[int]testutil.Proc{
		100: {Cmdline: []string{"/usr/bin/vlc", "movie.mkv"}, Comm: "vlc"},
		200: {Cmdline: []string{"/usr/bin/bash"}, Comm: "bash"},
	})
	t.Setenv("APPWATCH_PROC_ROOT", procRoot)
	return configHome
}
