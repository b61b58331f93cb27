// Package notify shows a popup when a watched application starts.
//
// Notifications go through a Backend chosen once at startup from a priority
// ordered probe list. Graphical backends shell out to native tools with
// os/exec; the console backend prints the same title and message and is
// always available, so a notification is never lost.
//
// # Platform Support
//
//   - Linux: zenity, then notify-send (both require DISPLAY or WAYLAND_DISPLAY)
//   - macOS: osascript
//   - Windows: PowerShell toast notifications
//   - everywhere: console output
//
// # Dispatch
//
// Notifier.Display never blocks on the notifier and never fails: graphical
// tools are started and reaped in the background, and a tool that cannot be
// started is logged and replaced by console output for that notification.
//
// # Usage
//
//	console := notify.NewConsole(os.Stdout, true)
//	backend, err := notify.Select(notify.BackendAuto, notify.Probe(console))
//	if err != nil {
//		return err
//	}
//	n := notify.NewNotifier(backend, console, logger)
//	n.Display(notify.NewNotification("Started", "firefox (PID 100)"))
package notify
