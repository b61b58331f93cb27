package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/appwatch/appwatch/internal/cli/shared"
	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/appwatch/appwatch/internal/process"
	"github.com/appwatch/appwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Structure(t *testing.T) {
	t.Parallel()

	listCmd := newListCmd()
	assert.Equal(t, "list", listCmd.Use)
	assert.Contains(t, listCmd.Aliases, "ls")
	assert.Equal(t, shared.GroupWatching, listCmd.GroupID)
	assert.NotNil(t, listCmd.Flags().Lookup("all"))
	assert.NotEmpty(t, listCmd.Example)
}

func TestMatchingRecords(t *testing.T) {
	t.Parallel()

	records := []process.Record{
		{PID: 1, Name: "systemd", Exe: "/usr/lib/systemd/systemd", Cmdline: "/sbin/init"},
		{PID: 20, Name: "firefox", Exe: "/usr/lib/firefox/firefox", Cmdline: "/usr/lib/firefox/firefox"},
		{PID: 31, Name: "python3", Exe: "/usr/bin/python3", Cmdline: "python3 /opt/tools/firewatch.py"},
	}

	tests := map[string]struct {
		apps    []string
		regex   bool
		wantPID []int
	}{
		"name substring":      {apps: []string{"fire"}, wantPID: []int{20, 31}},
		"case insensitive":    {apps: []string{"FIREFOX"}, wantPID: []int{20}},
		"exe path":            {apps: []string{"/usr/lib/systemd"}, wantPID: []int{1}},
		"regex anchored name": {apps: []string{"^fire"}, regex: true, wantPID: []int{20}},
		"no match":            {apps: []string{"vlc"}, wantPID: []int{}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			set, err := pattern.Parse(tt.apps, tt.regex)
			require.NoError(t, err)

			got := matchingRecords(records, set)
			pids := make([]int, 0, len(got))
			for _, rec := range got {
				pids = append(pids, rec.PID)
			}
			assert.Equal(t, tt.wantPID, pids)
		})
	}
}

func TestWriteProcessTable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		records []process.Record
		want    []string
	}{
		"empty": {
			want: []string{"No matching processes."},
		},
		"single": {
			records: []process.Record{{PID: 42, Name: "code", Exe: "/usr/share/code/code", Cmdline: "/usr/share/code/code --new-window"}},
			want:    []string{"PID", "APP", "42", "code", "/usr/share/code/code --new-window", "1 process\n"},
		},
		"plural": {
			records: []process.Record{{PID: 1, Name: "a"}, {PID: 2, Name: "b"}},
			want:    []string{"2 processes\n"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			writeProcessTable(&buf, tt.records)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestClip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "火狐浏...", clip("火狐浏览器浏览器", 6))
}

// Tests below change the environment and cannot run in parallel.

func TestRunList(t *testing.T) {
	testutil.IsolateConfig(t)
	procRoot := testutil.WriteProcTree(t, map[int]testutil.Proc{
		100: {Cmdline: []string{"/usr/bin/vlc", strings.Repeat("x", 10)}, Comm: "vlc"},
		200: {Cmdline: []string{"/usr/bin/bash"}, Comm: "bash"},
	})
	t.Setenv("APPWATCH_PROC_ROOT", procRoot)

	tests := map[string]struct {
		args       []string
		wantErr    bool
		wantCode   int
		wantOut    []string
		notOut     []string
		wantStderr string
	}{
		"matching only": {
			args:    []string{"list", "--apps", "vlc"},
			wantOut: []string{"100", "vlc", "1 process"},
			notOut:  []string{"bash"},
		},
		"all": {
			args:    []string{"list", "--all"},
			wantOut: []string{"vlc", "bash", "2 processes"},
		},
		"nothing running": {
			args:    []string{"list", "--apps", "firefox"},
			wantOut: []string{"No matching processes."},
		},
		"no patterns": {
			args:       []string{"list"},
			wantErr:    true,
			wantCode:   shared.ExitConfigError,
			wantStderr: "no valid app patterns",
		},
		"bad regex": {
			args:       []string{"list", "--apps", "(", "--regex"},
			wantErr:    true,
			wantCode:   shared.ExitConfigError,
			wantStderr: "(",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, stderr, err := executeUtil(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, shared.ExitCode(err))
				assert.Contains(t, stderr, tt.wantStderr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.wantOut {
				assert.Contains(t, stdout, w)
			}
			for _, n := range tt.notOut {
				assert.NotContains(t, stdout, n)
			}
		})
	}
}

func TestRunList_MissingProcTable(t *testing.T) {
	testutil.IsolateConfig(t)
	t.Setenv("APPWATCH_PROC_ROOT", "/nonexistent/proc")

	_, stderr, err := executeUtil(t, "list", "--all")
	require.Error(t, err)
	assert.Equal(t, shared.ExitFailure, shared.ExitCode(err))
	assert.Contains(t, stderr, "cannot read the process table")
}
