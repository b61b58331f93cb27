// Package engine decides which observed processes become notifications.
//
// The Engine is the only owner of the monitor's mutable state: the set of pids
// already notified (once-per-pid mode) and the last time each match key fired
// (debounce). It is driven by a single poll loop and does no locking.
//
// Evaluation order for one record:
//  1. once-per-pid gate: a pid that already fired is suppressed outright
//  2. pattern match over name, executable path and command line
//  3. debounce on the record's match key
//  4. fire, remembering the time and (in once-per-pid mode) the pid
package engine

import (
	"time"

	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/appwatch/appwatch/internal/process"
)

// Decision is the outcome of evaluating one record
type Decision int

const (
	// Suppress means no notification should be raised
	Suppress Decision = iota
	// Fire means a notification should be raised
	Fire
)

// String returns the decision name for logs
func (d Decision) String() string {
	if d == Fire {
		return "fire"
	}
	return "suppress"
}

// Options controls the firing policy
type Options struct {
	// OncePerPID suppresses every event for a pid after its first one
	OncePerPID bool

	// Debounce is the minimum gap between two events sharing a match key.
	// Zero disables debouncing.
	Debounce time.Duration
}

// Engine evaluates process records against a pattern set
type Engine struct {
	patterns  pattern.Set
	opts      Options
	seenPIDs  map[int]struct{}
	lastFired map[string]time.Time
}

// New creates an engine with empty state
func New(patterns pattern.Set, opts Options) *Engine {
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	return &Engine{
		patterns:  patterns,
		opts:      opts,
		seenPIDs:  make(map[int]struct{}),
		lastFired: make(map[string]time.Time),
	}
}

// Options returns the firing policy in effect
func (e *Engine) Options() Options {
	return e.opts
}

// Patterns returns the active pattern set
func (e *Engine) Patterns() pattern.Set {
	return e.patterns
}

// SetPatterns replaces the active pattern set. Debounce and pid state are kept.
func (e *Engine) SetPatterns(patterns pattern.Set) {
	e.patterns = patterns
}

// Seen reports whether pid is permanently gated. It is always false unless
// once-per-pid mode is active, and lets callers skip reading such processes.
func (e *Engine) Seen(pid int) bool {
	if !e.opts.OncePerPID {
		return false
	}
	_, ok := e.seenPIDs[pid]
	return ok
}

// Matches reports whether rec matches the active pattern set
func (e *Engine) Matches(rec process.Record) bool {
	return e.patterns.MatchAny(rec.Candidates()...)
}

// Evaluate decides whether rec should fire at time now and records the event
// when it does.
func (e *Engine) Evaluate(rec process.Record, now time.Time) Decision {
	if e.Seen(rec.PID) {
		return Suppress
	}

	if !e.Matches(rec) {
		return Suppress
	}

	key := rec.MatchKey()
	if e.opts.Debounce > 0 {
		if last, ok := e.lastFired[key]; ok && now.Sub(last) < e.opts.Debounce {
			return Suppress
		}
	}

	e.lastFired[key] = now
	if e.opts.OncePerPID {
		e.seenPIDs[rec.PID] = struct{}{}
	}
	return Fire
}

// LastFired returns when key last fired
func (e *Engine) LastFired(key string) (time.Time, bool) {
	t, ok := e.lastFired[key]
	return t, ok
}

// TrackedKeys returns the number of match keys with debounce state
func (e *Engine) TrackedKeys() int {
	return len(e.lastFired)
}
