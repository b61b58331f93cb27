package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Console prints notifications as text. It is the last entry of every probe
// list and the fallback when a graphical tool cannot be started.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	tag *color.Color
}

// NewConsole creates a console backend writing to w.
// With useColor false the [POPUP] tag is never colored.
func NewConsole(w io.Writer, useColor bool) *Console {
	tag := color.New(color.FgCyan, color.Bold)
	if !useColor {
		tag.DisableColor()
	}
	return &Console{w: w, tag: tag}
}

func (c *Console) Name() string    { return BackendConsole }
func (c *Console) Available() bool { return true }

// Send writes "[POPUP] <title>: <message>" followed by a newline
func (c *Console) Send(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.w, "%s %s: %s\n", c.tag.Sprint("[POPUP]"), n.Title, n.Message)
	return err
}
