//go:build darwin

package notify

// platformBackends probes osascript for Notification Center popups
func platformBackends() []Backend {
	return []Backend{
		newOsascriptBackend(toolAvailable("osascript"), startDetached),
	}
}
