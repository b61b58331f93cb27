// Package monitor runs the poll loop that turns process table snapshots into
// launch notifications.
//
// Run must be called from exactly one goroutine. That goroutine is the only
// caller of the engine, so pattern reloads are applied between cycles rather
// than from the goroutine that produced them.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/appwatch/appwatch/internal/engine"
	"github.com/appwatch/appwatch/internal/message"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/appwatch/appwatch/internal/process"
	"github.com/google/uuid"
)

const (
	// DefaultInterval is the target time between cycle starts
	DefaultInterval = time.Second

	// DefaultMinSleep is the shortest pause between cycles, even when a cycle
	// overruns the interval
	DefaultMinSleep = 50 * time.Millisecond
)

// Event is one notification raised by the monitor
type Event struct {
	ID      uuid.UUID
	Record  process.Record
	FiredAt time.Time
	Title   string
	Message string
}

// CycleReport summarises one completed cycle
type CycleReport struct {
	Cycle     int
	Processes int
	Events    []Event
	Elapsed   time.Duration
	Patterns  pattern.Set
	Err       error
}

// Options configures a Monitor
type Options struct {
	Interval time.Duration
	MinSleep time.Duration

	// Title and Message are templates rendered with message.Render
	Title   string
	Message string

	// Icon, Width and Height are passed to the notifier as hints
	Icon   string
	Width  int
	Height int

	Logger *slog.Logger
	Clock  func() time.Time

	// Reload delivers replacement pattern sets
	Reload <-chan pattern.Set

	// OnCycle is called after every cycle from the loop goroutine
	OnCycle func(CycleReport)
}

// Monitor polls a process source and dispatches notifications for the
// records the engine decides to fire
type Monitor struct {
	src      process.Source
	engine   *engine.Engine
	notifier notify.Displayer
	opts     Options
	logger   *slog.Logger
	clock    func() time.Time
	cycles   int
}

// New creates a monitor. Zero options take their defaults; empty templates
// use message.DefaultTitle and message.DefaultMessage.
func New(src process.Source, eng *engine.Engine, n notify.Displayer, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MinSleep <= 0 {
		opts.MinSleep = DefaultMinSleep
	}
	if opts.Title == "" {
		opts.Title = message.DefaultTitle
	}
	if opts.Message == "" {
		opts.Message = message.DefaultMessage
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Monitor{
		src:      src,
		engine:   eng,
		notifier: n,
		opts:     opts,
		logger:   opts.Logger,
		clock:    opts.Clock,
	}
}

// Run polls until ctx is cancelled and returns nil on shutdown. A cycle in
// progress when ctx is cancelled runs to completion.
func (m *Monitor) Run(ctx context.Context) error {
	eo := m.engine.Options()
	m.logger.Info("monitor started",
		"patterns", m.engine.Patterns().String(),
		"interval", m.opts.Interval,
		"debounce", eo.Debounce,
		"once_per_pid", eo.OncePerPID,
	)

	for {
		if ctx.Err() != nil {
			m.logger.Info("stopping monitor", "cycles", m.cycles)
			return nil
		}

		start := time.Now()
		if _, err := m.RunOnce(ctx); err != nil {
			m.logger.Error("poll cycle failed", "cycle", m.cycles, "error", err)
		}

		wait := max(m.opts.MinSleep, m.opts.Interval-time.Since(start))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			m.logger.Info("stopping monitor", "cycles", m.cycles)
			return nil
		case <-timer.C:
		}
	}
}

// RunOnce applies a pending pattern reload and runs one cycle. Failures inside
// the cycle, panics included, are returned together with the events raised
// before the failure.
func (m *Monitor) RunOnce(ctx context.Context) ([]Event, error) {
	m.applyReload()

	start := time.Now()
	m.cycles++
	report := CycleReport{Cycle: m.cycles, Patterns: m.engine.Patterns()}

	report.Processes, report.Events, report.Err = m.cycle(ctx)
	report.Elapsed = time.Since(start)

	if m.opts.OnCycle != nil {
		m.opts.OnCycle(report)
	}
	return report.Events, report.Err
}

// SetReload sets the channel delivering replacement pattern sets.
// It must be called before Run.
func (m *Monitor) SetReload(ch <-chan pattern.Set) {
	m.opts.Reload = ch
}

// Cycles returns the number of cycles run so far
func (m *Monitor) Cycles() int {
	return m.cycles
}

func (m *Monitor) applyReload() {
	if m.opts.Reload == nil {
		return
	}
	select {
	case set, ok := <-m.opts.Reload:
		if !ok {
			m.opts.Reload = nil
			return
		}
		m.engine.SetPatterns(set)
		m.logger.Info("applied new patterns", "patterns", set.String())
	default:
	}
}

func (m *Monitor) cycle(ctx context.Context) (processes int, events []Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()

	debug := m.logger.Enabled(ctx, slog.LevelDebug)
	pids := m.src.ListPIDs()
	for _, pid := range pids {
		if m.engine.Seen(pid) {
			continue
		}
		rec, ok := m.src.Read(pid)
		if !ok {
			continue
		}

		now := m.clock()
		decision := m.engine.Evaluate(rec, now)
		if decision != engine.Fire {
			if debug && m.engine.Matches(rec) {
				m.logger.Debug("launch suppressed", "pid", rec.PID, "key", rec.MatchKey(), "decision", decision.String())
			}
			continue
		}

		events = append(events, m.dispatch(rec, now))
	}
	return len(pids), events, nil
}

// dispatch renders the templates for rec and hands the notification to the
// notifier, which returns without waiting for the notifier process
func (m *Monitor) dispatch(rec process.Record, now time.Time) Event {
	fields := message.Fields(rec)
	ev := Event{
		ID:      newEventID(),
		Record:  rec,
		FiredAt: now,
		Title:   message.Render(m.opts.Title, fields),
		Message: message.Render(m.opts.Message, fields),
	}

	m.logger.Info("app launched",
		"event", ev.ID.String(),
		"app", rec.AppName(),
		"pid", rec.PID,
		"exe", rec.Exe,
	)

	n := notify.NewNotification(ev.Title, ev.Message).WithHints(m.opts.Icon, m.opts.Width, m.opts.Height)
	m.notifier.Display(n)
	return ev
}

// newEventID returns a time-ordered UUIDv7, falling back to a random UUID
func newEventID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
