package notify

// Backend names accepted by Select
const (
	BackendAuto       = "auto"
	BackendZenity     = "zenity"
	BackendNotifySend = "notify-send"
	BackendOsascript  = "osascript"
	BackendPowerShell = "powershell"
	BackendConsole    = "console"
)

// BackendNames lists every name Select understands, in probe priority order
func BackendNames() []string {
	return []string{
		BackendAuto,
		BackendZenity,
		BackendNotifySend,
		BackendOsascript,
		BackendPowerShell,
		BackendConsole,
	}
}

// ValidBackendName checks if the given string names a backend or auto
func ValidBackendName(s string) bool {
	for _, name := range BackendNames() {
		if s == name {
			return true
		}
	}
	return false
}

// Notification is a single popup to display
type Notification struct {
	// Title is the popup title
	Title string

	// Message is the popup body text
	Message string

	// Icon is an icon path or theme name (zenity, notify-send)
	Icon string

	// Width and Height size the popup window (zenity only); zero means unset
	Width  int
	Height int
}

// NewNotification creates a Notification without presentation hints
func NewNotification(title, message string) Notification {
	return Notification{
		Title:   title,
		Message: message,
	}
}

// WithHints returns a copy of n carrying the icon and size hints
func (n Notification) WithHints(icon string, width, height int) Notification {
	n.Icon = icon
	n.Width = width
	n.Height = height
	return n
}
