// Package progress renders the watcher's status line on interactive terminals.
// A spinner on stderr shows the active patterns and running counters, and every
// other write to the terminal goes through the Display so log lines and console
// popups never tear the spinner.
package progress

import "time"

// Status is a snapshot of the watcher shown next to the spinner
type Status struct {
	// Patterns is the active pattern set as printed in logs
	Patterns string
	// Processes is the number of pids seen in the last poll
	Processes int
	// Events is the total number of notifications raised
	Events int
	// LastApp is the app of the most recent notification ("" before the first)
	LastApp string
	// LastAt is when the most recent notification fired
	LastAt time.Time
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stderr is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Separator joins the status fields (" · " or " | ")
	Separator string
	// Alert marks the last notification ("🔔" or "!")
	Alert string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
