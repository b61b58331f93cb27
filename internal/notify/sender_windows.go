//go:build windows

package notify

// platformBackends probes PowerShell for toast notifications
func platformBackends() []Backend {
	return []Backend{
		newPowerShellBackend(toolAvailable("powershell"), startDetached),
	}
}
