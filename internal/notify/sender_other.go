//go:build !linux && !darwin && !windows

package notify

// platformBackends has no graphical backend; console is used
func platformBackends() []Backend {
	return nil
}
