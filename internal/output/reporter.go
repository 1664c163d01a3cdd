package output

import (
	"strings"
	"time"

	"github.com/danchr/progress/internal/progress"
	"github.com/go-logr/logr"
)

const (
	fallbackFormat          = "{index}/{max} {percent:.1f}%"
	fallbackUnboundedFormat = "{index}"
)

type ReporterOptions struct {
	Emitter EventEmitter

	// Format is the status template for bounded trackers and
	// UnboundedFormat the one for trackers without a target. See
	// progress.Snapshot.Expand for the syntax.
	Format          string
	UnboundedFormat string

	Now    func() time.Time
	Logger logr.Logger
}

// Reporter turns tracker snapshots into events. It implements
// progress.Observer.
type Reporter struct {
	opts ReporterOptions
	err  error
}

func NewReporter(opts ReporterOptions) *Reporter {
	if strings.TrimSpace(opts.Format) == "" {
		opts.Format = fallbackFormat
	}
	if strings.TrimSpace(opts.UnboundedFormat) == "" {
		opts.UnboundedFormat = fallbackUnboundedFormat
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Reporter{opts: opts}
}

func (r *Reporter) Begin(s progress.Snapshot) {
	r.emit(LevelInfo, EventTrackerStarted, "started: "+r.Line(s), Details(s))
}

func (r *Reporter) Update(s progress.Snapshot) {
	r.emit(LevelInfo, EventTrackerUpdated, r.Line(s), Details(s))
}

// Warn reports a condition that degrades the metrics without stopping the
// work, such as an input whose size cannot be known up front.
func (r *Reporter) Warn(message string, details map[string]any) {
	r.emit(LevelWarn, EventTrackerWarning, message, details)
}

// Done reports the final state. runErr, when set, is recorded as the reason
// the tracked work stopped early and the event is raised to error level.
func (r *Reporter) Done(s progress.Snapshot, runErr error) {
	details := Details(s)
	if runErr == nil {
		r.emit(LevelInfo, EventTrackerFinished, "done: "+r.Line(s), details)
		return
	}
	details["error"] = runErr.Error()
	r.emit(LevelError, EventTrackerFinished, "stopped: "+r.Line(s), details)
}

// Err returns the first emitter failure, if any.
func (r *Reporter) Err() error {
	return r.err
}

// Line renders a snapshot with the configured template.
func (r *Reporter) Line(s progress.Snapshot) string {
	format := r.opts.UnboundedFormat
	if s.Bounded {
		format = r.opts.Format
	}
	return strings.TrimSpace(s.Expand(format))
}

func (r *Reporter) emit(level Level, name EventName, message string, details map[string]any) {
	if r.opts.Emitter == nil {
		return
	}
	err := r.opts.Emitter.Emit(Event{
		Timestamp: r.opts.Now().UTC(),
		Level:     level,
		Event:     name,
		Message:   message,
		Details:   details,
	})
	if err != nil {
		r.opts.Logger.Error(err, "emit progress event", "event", name)
		if r.err == nil {
			r.err = err
		}
	}
}

// Details flattens a snapshot into event details. Durations are seconds.
func Details(s progress.Snapshot) map[string]any {
	details := map[string]any{
		"index":           s.Index,
		"elapsed_seconds": s.Elapsed.Seconds(),
		"avg_seconds":     s.Avg.Seconds(),
		"rate":            s.Rate,
	}
	if s.Bounded {
		details["max"] = s.Max
		details["remaining"] = s.Remaining
		details["percent"] = s.Percent
		details["eta_seconds"] = s.ETA.Seconds()
		details["total_seconds"] = s.Total.Seconds()
	}
	if len(s.Fields) > 0 {
		details["fields"] = s.Fields
	}
	return details
}
