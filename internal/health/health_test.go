// Package health_test tests the doctor environment checks.
// Related: internal/health/health.go
// Tags: health, doctor, backends, proc, templates
package health

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/appwatch/appwatch/internal/config"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	name      string
	available bool
}

func (s stubBackend) Name() string                   { return s.name }
func (s stubBackend) Available() bool                { return s.available }
func (s stubBackend) Send(notify.Notification) error { return nil }

// fakeProcRoot creates a proc tree holding the given pids
func fakeProcRoot(t *testing.T, pids ...int) string {
	t.Helper()
	root := t.TempDir()
	for _, pid := range pids {
		dir := filepath.Join(root, strconv.Itoa(pid))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte("sleep\x00100\x00"), 0o644))
	}
	return root
}

func TestCheckProcessTable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		root       func(t *testing.T) string
		wantPassed bool
		wantMsg    string
	}{
		"processes visible": {
			root:       func(t *testing.T) string { return fakeProcRoot(t, 1, 42) },
			wantPassed: true,
			wantMsg:    "2 processes visible",
		},
		"empty table": {
			root:    func(t *testing.T) string { return fakeProcRoot(t) },
			wantMsg: "no processes visible",
		},
		"missing mount": {
			root:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") },
			wantMsg: "absent",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := CheckProcessTable(tt.root(t))
			assert.Equal(t, "Process table", result.Name)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Contains(t, result.Message, tt.wantMsg)
		})
	}
}

func TestCheckPatterns(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		apps       []string
		regex      bool
		wantPassed bool
		wantMsg    string
	}{
		"literal":   {apps: []string{"firefox,code"}, wantPassed: true, wantMsg: "firefox, code"},
		"regex":     {apps: []string{"^fire"}, regex: true, wantPassed: true, wantMsg: "/^fire/"},
		"none":      {apps: []string{" , "}, wantMsg: "no app patterns"},
		"bad regex": {apps: []string{"("}, regex: true, wantMsg: "("},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			result := CheckPatterns(tt.apps, tt.regex)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Contains(t, result.Message, tt.wantMsg)
			assert.False(t, result.Optional)
		})
	}
}

func TestCheckBackend(t *testing.T) {
	t.Parallel()

	ok := CheckBackend(stubBackend{name: notify.BackendZenity, available: true})
	assert.True(t, ok.Passed)
	assert.Equal(t, "Backend zenity", ok.Name)

	missing := CheckBackend(stubBackend{name: notify.BackendNotifySend})
	assert.False(t, missing.Passed)
	assert.True(t, missing.Optional)
}

func TestCheckSelection(t *testing.T) {
	t.Parallel()

	backends := []notify.Backend{
		stubBackend{name: notify.BackendZenity},
		stubBackend{name: notify.BackendConsole, available: true},
	}

	auto := CheckSelection(notify.BackendAuto, backends)
	assert.True(t, auto.Passed)
	assert.Equal(t, notify.BackendConsole, auto.Message)

	forced := CheckSelection(notify.BackendZenity, backends)
	assert.False(t, forced.Passed)
	assert.False(t, forced.Optional)
}

func TestCheckTemplate(t *testing.T) {
	t.Parallel()

	ok := CheckTemplate("title", "Started {app} ({pid})")
	assert.True(t, ok.Passed)

	warn := CheckTemplate("message", "{app} {name} {{literal}} {path}")
	assert.False(t, warn.Passed)
	assert.True(t, warn.Optional)
	assert.Equal(t, "unknown placeholders render empty: {name}, {path}", warn.Message)
}

func TestCheckConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(good, []byte("apps: [a]\n"), 0o644))
	odd := filepath.Join(dir, "odd.yml")
	require.NoError(t, os.WriteFile(odd, []byte("apps: [a]\nsound: on\n"), 0o644))
	broken := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(broken, []byte("apps: [a\n"), 0o644))

	assert.True(t, CheckConfigFile(good).Passed)

	result := CheckConfigFile(odd)
	assert.True(t, result.Optional)
	assert.Contains(t, result.Message, "sound")

	result = CheckConfigFile(broken)
	assert.False(t, result.Passed)
	assert.False(t, result.Optional)
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	cfg := &config.Configuration{
		Apps:     []string{"firefox"},
		Title:    "{app}",
		Message:  "{bogus}",
		Backend:  notify.BackendAuto,
		ProcRoot: fakeProcRoot(t, 1),
	}
	backends := []notify.Backend{
		stubBackend{name: notify.BackendZenity},
		stubBackend{name: notify.BackendConsole, available: true},
	}

	report := RunHealthChecks(Options{Config: cfg, Backends: backends})
	assert.True(t, report.Passed, "optional warnings do not fail the report")

	names := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Process table",
		"Patterns",
		"Backend zenity",
		"Backend console",
		"Selected backend",
		"Template title",
		"Template message",
	}, names)

	cfg.Apps = nil
	report = RunHealthChecks(Options{Config: cfg, Backends: backends})
	assert.False(t, report.Passed)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{
		Checks: []CheckResult{
			{Name: "Process table", Passed: true, Message: "12 processes visible under /proc"},
			{Name: "Backend zenity", Optional: true, Message: "not available"},
			{Name: "Patterns", Message: "no app patterns configured"},
		},
	}

	out := FormatReport(report)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "✓")
	assert.Contains(t, lines[0], "12 processes visible under /proc")
	assert.Contains(t, lines[1], "!")
	assert.Contains(t, lines[1], "Backend zenity")
	assert.Contains(t, lines[2], "✗")
	assert.Contains(t, lines[2], "no app patterns configured")
}
