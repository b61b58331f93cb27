// Package testutil provides test utilities and helpers for appwatch tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Proc describes one pid directory in a fake proc tree.
// A nil Cmdline leaves the file out, which looks like an exited process.
type Proc struct {
	Cmdline []string
	Comm    string
	Exe     string
}

// WriteProcTree creates a directory laid out like a proc mount holding procs.
// Cleanup is handled via t.TempDir.
func WriteProcTree(t *testing.T, procs map[int]Proc) string {
	t.Helper()

	root := t.TempDir()
	WriteFile(t, filepath.Join(root, "uptime"), "1.0 1.0\n")

	for pid, p := range procs {
		dir := filepath.Join(root, strconv.Itoa(pid))
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create pid directory %s: %v", dir, err)
		}
		if p.Cmdline != nil {
			data := strings.Join(p.Cmdline, "\x00")
			if len(p.Cmdline) > 0 {
				data += "\x00"
			}
			WriteFile(t, filepath.Join(dir, "cmdline"), data)
		}
		if p.Comm != "" {
			WriteFile(t, filepath.Join(dir, "comm"), p.Comm+"\n")
		}
		if p.Exe != "" {
			if err := os.Symlink(p.Exe, filepath.Join(dir, "exe")); err != nil {
				t.Fatalf("failed to link exe for pid %d: %v", pid, err)
			}
		}
	}
	return root
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// configEnvVars lists the environment variables that change the loaded
// configuration outside of a test's control.
var configEnvVars = []string{
	"APPWATCH_APPS",
	"APPWATCH_REGEX",
	"APPWATCH_INTERVAL",
	"APPWATCH_DEBOUNCE",
	"APPWATCH_ONCE_PER_PID",
	"APPWATCH_TITLE",
	"APPWATCH_MESSAGE",
	"APPWATCH_ICON",
	"APPWATCH_WIDTH",
	"APPWATCH_HEIGHT",
	"APPWATCH_BACKEND",
	"APPWATCH_LOG_LEVEL",
	"APPWATCH_SHOW_PROGRESS",
	"APPWATCH_PROC_ROOT",
}

// IsolateConfig points HOME and XDG_CONFIG_HOME at a fresh directory and
// clears every APPWATCH_ variable, so only what the test sets is loaded.
// It returns the directory used as XDG_CONFIG_HOME. Tests calling it cannot
// run in parallel.
func IsolateConfig(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	configHome := filepath.Join(home, ".config")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return configHome
}
