package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appwatch/appwatch/internal/cli/shared"
	"github.com/appwatch/appwatch/internal/config"
	"github.com/appwatch/appwatch/internal/engine"
	clierrors "github.com/appwatch/appwatch/internal/errors"
	"github.com/appwatch/appwatch/internal/monitor"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/appwatch/appwatch/internal/process"
	"github.com/appwatch/appwatch/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchSession holds everything the watch command builds before polling
type watchSession struct {
	opts     config.LoadOptions
	patterns pattern.Set
	display  *progress.Display
	logger   *slog.Logger
	monitor  *monitor.Monitor
	status   progress.Status
	once     bool
}

func runWatch(cmd *cobra.Command, args []string) error {
	session, err := newWatchSession(cmd, progress.DetectTerminalCapabilities())
	if err != nil {
		return err
	}
	defer session.display.Stop()

	if session.once {
		return session.runOnce(cmd.Context())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return session.run(ctx)
}

// newWatchSession loads configuration and wires the process reader, notifier
// and monitor. Every failure is printed and carries its exit code.
func newWatchSession(cmd *cobra.Command, caps progress.TerminalCapabilities) (*watchSession, error) {
	stderr := cmd.ErrOrStderr()

	cfg, opts, err := shared.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	patterns, err := shared.ParsePatterns(stderr, cfg)
	if err != nil {
		return nil, err
	}

	once, _ := cmd.Flags().GetBool("once")
	debug, _ := cmd.Flags().GetBool(shared.FlagDebug)
	if !cfg.ShowProgress || once {
		caps.IsTTY = false
	}

	display := progress.NewDisplay(caps, stderr)
	logger := shared.NewLogger(display, cfg.LogLevel, debug)
	slog.SetDefault(logger)

	reader, err := process.NewReader(cfg.ProcRoot)
	if err != nil {
		return nil, shared.Fail(stderr, clierrors.ProcessTableUnavailable(cfg.ProcRoot, err), shared.ExitFailure)
	}

	console := notify.NewConsole(display.Wrap(cmd.OutOrStdout()), !color.NoColor)
	backend, err := notify.Select(cfg.Backend, notify.Probe(console))
	if err != nil {
		return nil, shared.Fail(stderr, clierrors.BackendUnavailable(cfg.Backend, err), shared.ExitFailure)
	}
	logger.Debug("notification backend selected", "backend", backend.Name(), "platform", notify.Platform())

	eng := engine.New(patterns, engine.Options{
		OncePerPID: cfg.OncePerPID,
		Debounce:   cfg.DebounceWindow(),
	})

	s := &watchSession{
		opts:     opts,
		patterns: patterns,
		display:  display,
		logger:   logger,
		once:     once,
		status:   progress.Status{Patterns: patterns.String()},
	}
	s.monitor = monitor.New(reader, eng, notify.NewNotifier(backend, console, logger), monitor.Options{
		Interval: cfg.PollInterval(),
		Title:    cfg.Title,
		Message:  cfg.Message,
		Icon:     cfg.Icon,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Logger:   logger,
		OnCycle:  s.onCycle,
	})
	return s, nil
}

// runOnce polls a single time and reports a failing cycle with exit code 1
func (s *watchSession) runOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	events, err := s.monitor.RunOnce(ctx)
	if err != nil {
		return shared.Fail(s.display, clierrors.Wrap(err, clierrors.Runtime), shared.ExitFailure)
	}
	s.logger.Debug("single cycle finished", "events", len(events))
	return nil
}

// run polls until ctx is cancelled, reloading patterns when a config file
// changes. Without config files nothing is watched.
func (s *watchSession) run(ctx context.Context) error {
	s.display.Start(s.status)

	g, gctx := errgroup.WithContext(ctx)

	if paths := config.SourcePaths(s.opts); len(paths) > 0 {
		watcher, err := config.NewWatcher(paths, func() (*config.Configuration, error) {
			return config.Load(s.opts)
		}, s.patterns, s.logger)
		if err != nil {
			s.logger.Warn("config hot reload disabled", "error", err)
		} else {
			s.monitor.SetReload(watcher.Updates())
			g.Go(func() error { return watcher.Run(gctx) })
		}
	}

	g.Go(func() error { return s.monitor.Run(gctx) })

	if err := g.Wait(); err != nil {
		return shared.Fail(s.display, clierrors.Wrap(err, clierrors.Runtime), shared.ExitFailure)
	}
	return nil
}

// onCycle refreshes the status line; it runs on the monitor goroutine
func (s *watchSession) onCycle(r monitor.CycleReport) {
	s.status.Patterns = r.Patterns.String()
	s.status.Processes = r.Processes
	s.status.Events += len(r.Events)
	if n := len(r.Events); n > 0 {
		last := r.Events[n-1]
		s.status.LastApp = last.Record.AppName()
		s.status.LastAt = last.FiredAt
	}
	s.display.Update(s.status)
}
