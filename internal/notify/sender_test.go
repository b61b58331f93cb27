package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatform(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, Platform())
}

func TestProbe_ConsoleIsLast(t *testing.T) {
	t.Parallel()

	console := NewConsole(&discard{}, false)
	backends := Probe(console)

	require.NotEmpty(t, backends)
	last := backends[len(backends)-1]
	assert.Equal(t, BackendConsole, last.Name())
	assert.True(t, last.Available())

	for _, b := range backends[:len(backends)-1] {
		assert.True(t, ValidBackendName(b.Name()), b.Name())
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	zenity := NewMockBackend(BackendZenity).WithAvailable(false)
	notifySend := NewMockBackend(BackendNotifySend)
	console := NewMockBackend(BackendConsole)
	backends := []Backend{zenity, notifySend, console}

	tests := map[string]struct {
		preferred string
		backends  []Backend
		want      string
		wantErr   bool
	}{
		"auto picks first available": {
			preferred: BackendAuto,
			backends:  backends,
			want:      BackendNotifySend,
		},
		"empty means auto": {
			preferred: "",
			backends:  backends,
			want:      BackendNotifySend,
		},
		"auto falls through to console": {
			preferred: BackendAuto,
			backends:  []Backend{zenity, console},
			want:      BackendConsole,
		},
		"forced available backend": {
			preferred: BackendConsole,
			backends:  backends,
			want:      BackendConsole,
		},
		"forced unavailable backend fails": {
			preferred: BackendZenity,
			backends:  backends,
			wantErr:   true,
		},
		"forced unknown backend fails": {
			preferred: BackendOsascript,
			backends:  backends,
			wantErr:   true,
		},
		"nothing available fails": {
			preferred: BackendAuto,
			backends:  []Backend{zenity},
			wantErr:   true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Select(tt.preferred, tt.backends)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name())
		})
	}
}

func TestZenityArgs(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		n    Notification
		want []string
	}{
		"no hints": {
			n:    NewNotification("T", "M"),
			want: []string{"--info", "--no-wrap", "--title", "T", "--text", "M"},
		},
		"all hints": {
			n:    NewNotification("T", "M").WithHints("firefox", 400, 200),
			want: []string{"--info", "--no-wrap", "--title", "T", "--text", "M", "--window-icon", "firefox", "--width", "400", "--height", "200"},
		},
		"height only": {
			n:    NewNotification("T", "M").WithHints("", 0, 120),
			want: []string{"--info", "--no-wrap", "--title", "T", "--text", "M", "--height", "120"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, zenityArgs(tt.n))
		})
	}
}

func TestNotifySendArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"T", "M"}, notifySendArgs(NewNotification("T", "M")))
	assert.Equal(t,
		[]string{"--icon", "dialog-information", "T", "M"},
		notifySendArgs(NewNotification("T", "M").WithHints("dialog-information", 300, 300)),
		"size hints are ignored")
}

func TestOsascriptArgs(t *testing.T) {
	t.Parallel()

	args := osascriptArgs(NewNotification(`Say "hi"`, "body"))
	require.Len(t, args, 2)
	assert.Equal(t, "-e", args[0])
	assert.Equal(t, `display notification "body" with title "Say \"hi\""`, args[1])
}

func TestPowerShellArgs(t *testing.T) {
	t.Parallel()

	args := powerShellArgs(NewNotification("it's", "$HOME"))
	require.Len(t, args, 5)
	assert.Equal(t, "-Command", args[3])
	assert.Contains(t, args[4], "CreateTextNode('it''s')")
	assert.Contains(t, args[4], "CreateTextNode('`$HOME')")
}

func TestEscapeForPowerShell(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"plain":        {input: "firefox", want: "firefox"},
		"single quote": {input: "it's", want: "it''s"},
		"dollar":       {input: "$x", want: "`$x"},
		"backtick":     {input: "a`b", want: "a``b"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, escapeForPowerShell(tt.input))
		})
	}
}

func TestCommandBackend_Send(t *testing.T) {
	t.Parallel()

	rec := &recordingStarter{}
	b := newNotifySendBackend(true, rec.start)

	require.NoError(t, b.Send(NewNotification("Started", "firefox")))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"notify-send", "Started", "firefox"}, rec.calls[0])
	assert.Equal(t, BackendNotifySend, b.Name())
	assert.True(t, b.Available())
}

func TestCommandBackend_SendStartFailure(t *testing.T) {
	t.Parallel()

	rec := &recordingStarter{err: errToolMissing}
	b := newZenityBackend(true, rec.start)

	err := b.Send(NewNotification("T", "M"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errToolMissing)
}

func TestCommandBackend_SendUnavailable(t *testing.T) {
	t.Parallel()

	rec := &recordingStarter{}
	b := newOsascriptBackend(false, rec.start)

	assert.Error(t, b.Send(NewNotification("T", "M")))
	assert.Empty(t, rec.calls, "an unavailable backend never runs its tool")
}

func TestStartDetached_MissingTool(t *testing.T) {
	t.Parallel()

	err := startDetached("appwatch-definitely-not-a-real-tool")
	assert.Error(t, err)
}

func TestToolAvailable(t *testing.T) {
	t.Parallel()

	assert.False(t, toolAvailable("appwatch-definitely-not-a-real-tool"))
}

func TestHasDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	assert.False(t, hasDisplay())

	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	assert.True(t, hasDisplay())
}

func TestValidBackendName(t *testing.T) {
	t.Parallel()

	for _, name := range BackendNames() {
		assert.True(t, ValidBackendName(name), name)
	}
	assert.False(t, ValidBackendName("kdialog"))
}

// discard is an io.Writer that drops everything
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
