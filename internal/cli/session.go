package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danchr/progress/internal/config"
	"github.com/danchr/progress/internal/exitcode"
	"github.com/danchr/progress/internal/output"
	"github.com/danchr/progress/internal/progress"
	"github.com/go-logr/logr"
)

// trackedWork is either tracker variant.
type trackedWork interface {
	progress.Stepper
	Snapshot() progress.Snapshot
}

type session struct {
	cfg      config.Config
	reporter *output.Reporter
	log      logr.Logger
	events   *os.File
}

func newSession(app *AppContext) (*session, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, withExitCode(exitcode.InvalidConfig, err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, withExitCode(exitcode.InvalidConfig, err)
	}

	log := newLogger(app)

	var emitter output.EventEmitter
	if app.Opts.JSON {
		emitter = output.NewJSONEmitter(app.IO.Out)
	} else {
		status := output.NewStatusLine(app.IO.ErrOut, interactive(cfg.Output.Interactive, app.IO.ErrOut))
		log.V(1).Info("status line ready", "interactive", status.Interactive())
		emitter = output.NewHumanEmitter(status, app.IO.ErrOut, app.Opts.Quiet, app.Opts.Verbose)
	}

	var events *os.File
	if path := strings.TrimSpace(app.Opts.EventsPath); path != "" {
		events, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, withExitCode(exitcode.InvalidUsage, fmt.Errorf("open events file: %w", err))
		}
		emitter = output.NewMultiEmitter(emitter, output.NewJSONEmitter(events))
	}

	reporter := output.NewReporter(output.ReporterOptions{
		Emitter:         emitter,
		Format:          cfg.Output.Format,
		UnboundedFormat: cfg.Output.UnboundedFormat,
		Logger:          log.WithName("output"),
	})

	return &session{cfg: cfg, reporter: reporter, log: log, events: events}, nil
}

func (s *session) Close() error {
	if s.events == nil {
		return nil
	}
	return s.events.Close()
}

func interactive(mode config.InteractiveMode, w io.Writer) bool {
	switch mode {
	case config.InteractiveAlways:
		return true
	case config.InteractiveNever:
		return false
	default:
		return output.SupportsInPlaceUpdates(w)
	}
}

func (s *session) options() progress.Options {
	interval := s.cfg.Tracker.MinInterval
	if interval == 0 {
		interval = progress.NoThrottle
	}
	return progress.Options{
		Max:         s.cfg.Tracker.Max,
		Window:      s.cfg.Tracker.SMAWindow,
		MinInterval: interval,
		Fields:      s.cfg.Tracker.Fields,
		Observer:    s.reporter,
		Logger:      s.log.WithName("tracker"),
	}
}

func (s *session) newTracker(bounded bool, max int64) trackedWork {
	if !bounded {
		return progress.New(s.options())
	}
	b := progress.NewBounded(s.options())
	b.SetMax(max)
	return b
}

// observe reports the start and end of fn around work. fn owns the
// tracker's Start and Finish hooks.
func (s *session) observe(work trackedWork, fn func() error) error {
	s.reporter.Begin(work.Snapshot())
	err := fn()
	s.reporter.Done(work.Snapshot(), err)
	if err != nil {
		return err
	}
	return s.reporter.Err()
}

// track runs fn as a scoped use of work.
func (s *session) track(work trackedWork, fn func() error) error {
	return s.observe(work, func() error {
		return progress.Run(work, fn)
	})
}
