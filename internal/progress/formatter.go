package progress

import (
	"fmt"
	"strings"
)

// buildStatusMessage renders the spinner suffix for s
func buildStatusMessage(s Status, symbols ProgressSymbols, width int) string {
	parts := []string{"watching " + orNone(s.Patterns)}
	parts = append(parts, plural(s.Processes, "process", "processes"))
	parts = append(parts, plural(s.Events, "alert", "alerts"))
	if s.LastApp != "" {
		parts = append(parts, fmt.Sprintf("%s %s at %s", symbols.Alert, s.LastApp, s.LastAt.Format("15:04:05")))
	}
	return truncate(strings.Join(parts, symbols.Separator), width)
}

func orNone(s string) string {
	if s == "" {
		return "(no patterns)"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// truncate keeps the line within the terminal so the spinner redraws in place.
// The spinner glyph and its padding take three columns.
func truncate(msg string, width int) string {
	limit := width - 3
	if width <= 0 || limit <= 0 {
		return msg
	}
	runes := []rune(msg)
	if len(runes) <= limit {
		return msg
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
