package notify

import (
	"fmt"
	"log/slog"
)

// Displayer accepts notifications for display
type Displayer interface {
	Display(n Notification)
}

// Notifier dispatches notifications through the selected backend and falls
// back to the console when the backend fails.
type Notifier struct {
	backend  Backend
	fallback Backend
	logger   *slog.Logger
}

// NewNotifier creates a notifier. fallback is used when backend.Send fails;
// it is normally the Console also present at the end of the probe list.
func NewNotifier(backend, fallback Backend, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		backend:  backend,
		fallback: fallback,
		logger:   logger,
	}
}

// Backend returns the backend selected at startup
func (d *Notifier) Backend() Backend {
	return d.backend
}

// Display shows n. It never returns an error and never panics: a failing
// backend is logged and the same content is printed by the fallback.
func (d *Notifier) Display(n Notification) {
	err := d.send(d.backend, n)
	if err == nil {
		return
	}

	d.logger.Warn("failed to show popup", "backend", d.backend.Name(), "error", err)
	if d.fallback == nil || d.fallback == d.backend {
		return
	}
	if err := d.send(d.fallback, n); err != nil {
		d.logger.Error("fallback notification failed", "backend", d.fallback.Name(), "error", err)
	}
}

// send isolates the caller from panics inside a backend
func (d *Notifier) send(b Backend, n Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panicked: %v", r)
		}
	}()
	return b.Send(n)
}
