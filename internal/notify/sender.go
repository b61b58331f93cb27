package notify

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// Backend displays notifications through one mechanism
type Backend interface {
	// Name identifies the backend in logs and doctor output
	Name() string

	// Available reports whether the backend was usable when probed
	Available() bool

	// Send displays n. Graphical backends return once the tool is started.
	Send(n Notification) error
}

// Probe returns the platform's graphical backends in priority order followed
// by console, which is always available.
func Probe(console Backend) []Backend {
	return append(platformBackends(), console)
}

// Select picks the backend to use for the process lifetime. With preferred
// empty or BackendAuto the first available backend wins; otherwise the named
// backend must exist in backends and be available.
func Select(preferred string, backends []Backend) (Backend, error) {
	if preferred == "" || preferred == BackendAuto {
		for _, b := range backends {
			if b.Available() {
				return b, nil
			}
		}
		return nil, fmt.Errorf("no notification backend available")
	}

	for _, b := range backends {
		if b.Name() != preferred {
			continue
		}
		if !b.Available() {
			return nil, fmt.Errorf("notification backend %q is not available on this system", preferred)
		}
		return b, nil
	}
	return nil, fmt.Errorf("notification backend %q is not supported on %s", preferred, Platform())
}

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// hasDisplay checks if an X11 or Wayland display is available
func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// starter launches a tool without waiting for it to exit
type starter func(name string, args ...string) error

// startDetached starts the tool and reaps it in the background so a popup
// that stays open never stalls the caller.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// commandBackend is a Backend implemented by running an external tool
type commandBackend struct {
	name      string
	tool      string
	available bool
	args      func(n Notification) []string
	start     starter
}

func (b *commandBackend) Name() string    { return b.name }
func (b *commandBackend) Available() bool { return b.available }

func (b *commandBackend) Send(n Notification) error {
	if !b.available {
		return fmt.Errorf("%s is not available", b.name)
	}
	if err := b.start(b.tool, b.args(n)...); err != nil {
		return fmt.Errorf("failed to start %s: %w", b.tool, err)
	}
	return nil
}

func newZenityBackend(available bool, start starter) *commandBackend {
	return &commandBackend{name: BackendZenity, tool: "zenity", available: available, args: zenityArgs, start: start}
}

func newNotifySendBackend(available bool, start starter) *commandBackend {
	return &commandBackend{name: BackendNotifySend, tool: "notify-send", available: available, args: notifySendArgs, start: start}
}

func newOsascriptBackend(available bool, start starter) *commandBackend {
	return &commandBackend{name: BackendOsascript, tool: "osascript", available: available, args: osascriptArgs, start: start}
}

func newPowerShellBackend(available bool, start starter) *commandBackend {
	return &commandBackend{name: BackendPowerShell, tool: "powershell", available: available, args: powerShellArgs, start: start}
}

// zenityArgs builds an info dialog; icon and size hints are optional
func zenityArgs(n Notification) []string {
	args := []string{"--info", "--no-wrap", "--title", n.Title, "--text", n.Message}
	if n.Icon != "" {
		args = append(args, "--window-icon", n.Icon)
	}
	if n.Width > 0 {
		args = append(args, "--width", strconv.Itoa(n.Width))
	}
	if n.Height > 0 {
		args = append(args, "--height", strconv.Itoa(n.Height))
	}
	return args
}

// notifySendArgs ignores size hints, notify-send has no such options
func notifySendArgs(n Notification) []string {
	var args []string
	if n.Icon != "" {
		args = append(args, "--icon", n.Icon)
	}
	return append(args, n.Title, n.Message)
}

func osascriptArgs(n Notification) []string {
	script := fmt.Sprintf(`display notification %q with title %q`, n.Message, n.Title)
	return []string{"-e", script}
}

func powerShellArgs(n Notification) []string {
	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('appwatch').Show($toast)
`, escapeForPowerShell(n.Title), escapeForPowerShell(n.Message))
	return []string{"-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script}
}

// escapeForPowerShell doubles single quotes and backtick-escapes ` and $
func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteRune('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
