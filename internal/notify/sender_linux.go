//go:build linux

package notify

// platformBackends probes zenity before notify-send; both need a display
func platformBackends() []Backend {
	display := hasDisplay()
	return []Backend{
		newZenityBackend(toolAvailable("zenity") && display, startDetached),
		newNotifySendBackend(toolAvailable("notify-send") && display, startDetached),
	}
}
