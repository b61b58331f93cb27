package progress

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Display owns the status spinner. It is safe for concurrent use: the poll
// loop updates the status while loggers and the console notifier write
// through it.
type Display struct {
	mu      sync.Mutex
	caps    TerminalCapabilities
	symbols ProgressSymbols
	out     io.Writer
	spinner *spinner.Spinner
	status  Status
}

// NewDisplay creates a display drawing on out, normally os.Stderr.
// Without a TTY the display only forwards writes.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		caps:    caps,
		symbols: SelectSymbols(caps),
		out:     out,
	}
}

// Enabled reports whether a spinner will be drawn
func (d *Display) Enabled() bool {
	return d.caps.IsTTY
}

// Start begins drawing the spinner with the initial status
func (d *Display) Start(status Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.status = status
	if !d.caps.IsTTY || d.spinner != nil {
		return
	}
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
	)
	d.spinner.Writer = d.out
	d.spinner.Suffix = " " + d.message()
	d.spinner.Start()
}

// Update replaces the status shown next to the spinner
func (d *Display) Update(status Status) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.status = status
	if d.spinner == nil {
		return
	}
	d.spinner.Lock()
	d.spinner.Suffix = " " + d.message()
	d.spinner.Unlock()
}

// Message returns the current status line without the spinner glyph
func (d *Display) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.message()
}

func (d *Display) message() string {
	return buildStatusMessage(d.status, d.symbols, d.caps.Width)
}

// Write writes p to the display's output, clearing the spinner first
func (d *Display) Write(p []byte) (int, error) {
	return d.writeTo(d.out, p)
}

// Wrap returns a writer that pauses the spinner around every write to w
func (d *Display) Wrap(w io.Writer) io.Writer {
	return pausingWriter{d: d, w: w}
}

func (d *Display) writeTo(w io.Writer, p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner == nil || !d.spinner.Active() {
		return w.Write(p)
	}
	d.spinner.Stop()
	n, err := w.Write(p)
	d.spinner.Start()
	return n, err
}

// Stop erases the spinner. Later writes go straight to the output.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

type pausingWriter struct {
	d *Display
	w io.Writer
}

func (p pausingWriter) Write(b []byte) (int, error) {
	return p.d.writeTo(p.w, b)
}
