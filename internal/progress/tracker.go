package progress

import (
	"maps"
	"math"
	"time"

	"github.com/go-logr/logr"
)

const (
	DefaultWindow      = 10
	DefaultMinInterval = 100 * time.Millisecond
	DefaultMax         = 100

	// NoThrottle disables the minimum interval so every update with elapsed
	// time records a sample.
	NoThrottle time.Duration = -1
)

// Options configures a tracker. Zero values select the defaults.
type Options struct {
	// Max is the target unit count of a bounded tracker. Zero selects the
	// default; call SetMax(0) to target zero units.
	// Default: 100
	Max int64

	// Window is the capacity of the moving-average history.
	// Default: 10
	Window int

	// MinInterval throttles sampling and update notifications. A sample is
	// only recorded once more than MinInterval has passed since the last one.
	// Default: 100ms. Negative values, such as NoThrottle, mean zero.
	MinInterval time.Duration

	// Fields are opaque display values passed through to snapshots.
	Fields map[string]any

	// Clock returns the current time. It must carry a monotonic reading.
	// Default: time.Now
	Clock func() time.Time

	// Observer receives a snapshot on every update notification.
	Observer Observer

	// Logger receives accepted samples at V(1).
	Logger logr.Logger
}

// Observer is notified whenever a tracker fires its update hook.
type Observer interface {
	Update(s Snapshot)
}

type ObserverFunc func(s Snapshot)

func (f ObserverFunc) Update(s Snapshot) {
	f(s)
}

// Hooks are the lifecycle notifications both tracker variants expose.
type Hooks interface {
	Start()
	Update()
	Finish()
}

// Stepper is a tracker that can be advanced.
type Stepper interface {
	Hooks
	Next(n int64)
}

// Sizer is implemented by trackers that accept a discovered total.
type Sizer interface {
	SetMax(max int64)
}

// Tracker counts units of work and derives throughput from a moving average
// of per-unit durations. It has no known total; see Bounded for that.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	now         func() time.Time
	start       time.Time
	lastSample  time.Time
	index       int64
	lastIndex   int64
	rates       *window
	minInterval time.Duration
	fields      map[string]any
	observer    Observer
	log         logr.Logger

	bounded bool
	max     int64
}

// New returns an unbounded tracker.
func New(opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Window < 1 {
		opts.Window = DefaultWindow
	}
	if opts.MinInterval == 0 {
		opts.MinInterval = DefaultMinInterval
	}
	if opts.MinInterval < 0 {
		opts.MinInterval = 0
	}

	started := opts.Clock()
	return &Tracker{
		now:         opts.Clock,
		start:       started,
		lastSample:  started,
		rates:       newWindow(opts.Window),
		minInterval: opts.MinInterval,
		fields:      maps.Clone(opts.Fields),
		observer:    opts.Observer,
		log:         opts.Logger,
	}
}

// Next advances the tracker by n units. n may be negative.
//
// The counter always moves. A throughput sample is recorded and the update
// hook fires only when more than the minimum interval has passed since the
// previous sample.
func (t *Tracker) Next(n int64) {
	now := t.now()
	dt := now.Sub(t.lastSample)
	t.index += n
	if dt <= t.minInterval {
		return
	}

	t.lastSample = now
	if delta := t.index - t.lastIndex; delta > 0 {
		t.rates.push(dt / time.Duration(delta))
		t.log.V(1).Info("sample recorded", "index", t.index, "delta", delta, "dt", dt, "avg", t.rates.mean())
	}
	t.lastIndex = t.index
	t.Update()
}

// Goto moves the counter to an absolute position.
func (t *Tracker) Goto(index int64) {
	t.Next(index - t.index)
}

func (t *Tracker) Index() int64 {
	return t.index
}

// Elapsed is the time since construction, truncated to whole seconds.
func (t *Tracker) Elapsed() time.Duration {
	return t.elapsedAt(t.now())
}

// Avg is the mean duration per unit over the sample window, or 0 without
// samples.
func (t *Tracker) Avg() time.Duration {
	return t.rates.mean()
}

// Rate is the throughput in units per second, or 0 without samples.
func (t *Tracker) Rate() float64 {
	avg := t.rates.mean()
	if avg <= 0 {
		return 0
	}
	return 1 / avg.Seconds()
}

// Fields returns a copy of the caller supplied display fields.
func (t *Tracker) Fields() map[string]any {
	return maps.Clone(t.fields)
}

// Start is a no-op for an unbounded tracker.
func (t *Tracker) Start() {}

// Update notifies the observer with the current snapshot.
func (t *Tracker) Update() {
	if t.observer == nil {
		return
	}
	t.observer.Update(t.Snapshot())
}

// Finish fires one last update.
func (t *Tracker) Finish() {
	t.Update()
}

// Do runs fn between Start and Finish. Finish fires exactly once however fn
// exits.
func (t *Tracker) Do(fn func() error) error {
	return Run(t, fn)
}

// Snapshot captures every public metric at a single instant.
func (t *Tracker) Snapshot() Snapshot {
	now := t.now()
	s := Snapshot{
		Index:   t.index,
		Elapsed: t.elapsedAt(now),
		Avg:     t.rates.mean(),
		Rate:    t.Rate(),
		Fields:  maps.Clone(t.fields),
	}
	if t.bounded {
		s.Bounded = true
		s.Max = t.max
		s.Remaining = t.remaining()
		s.ETA = t.eta()
		s.Progress = t.progress()
		s.Percent = s.Progress * 100
		s.Total = addDurations(s.Elapsed, s.ETA)
	}
	return s
}

func (t *Tracker) elapsedAt(now time.Time) time.Duration {
	return now.Sub(t.start).Truncate(time.Second)
}

func (t *Tracker) remaining() int64 {
	return max(t.max-t.index, 0)
}

// maxDurationSeconds is the largest whole second count a time.Duration holds.
const maxDurationSeconds = float64(math.MaxInt64 / int64(time.Second))

func (t *Tracker) eta() time.Duration {
	seconds := math.Ceil(t.rates.mean().Seconds() * float64(t.remaining()))
	if seconds > maxDurationSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}

// addDurations saturates at the largest representable duration.
func addDurations(a, b time.Duration) time.Duration {
	if b > 0 && a > time.Duration(math.MaxInt64)-b {
		return time.Duration(math.MaxInt64)
	}
	return a + b
}

// progress treats a non-positive target as already complete.
func (t *Tracker) progress() float64 {
	if t.max <= 0 {
		return 1
	}
	return math.Min(1, float64(t.index)/float64(t.max))
}

// Bounded is a tracker with a known target, which enables percent, remaining
// and ETA metrics.
type Bounded struct {
	*Tracker
}

// NewBounded returns a tracker targeting opts.Max units, or 100 when unset.
func NewBounded(opts Options) *Bounded {
	t := New(opts)
	t.bounded = true
	t.max = opts.Max
	if t.max == 0 {
		t.max = DefaultMax
	}
	return &Bounded{Tracker: t}
}

func (b *Bounded) Max() int64 {
	return b.max
}

// SetMax replaces the target unit count.
func (b *Bounded) SetMax(max int64) {
	b.max = max
}

// Remaining is the number of units left, never negative.
func (b *Bounded) Remaining() int64 {
	return b.remaining()
}

// ETA estimates the time left from the current moving average, rounded up to
// whole seconds. It is recomputed on every call.
func (b *Bounded) ETA() time.Duration {
	return b.eta()
}

// Progress is the completed fraction, clamped to at most 1.
func (b *Bounded) Progress() float64 {
	return b.progress()
}

func (b *Bounded) Percent() float64 {
	return b.progress() * 100
}

// Total is the estimated overall duration, Elapsed plus ETA.
func (b *Bounded) Total() time.Duration {
	return addDurations(b.Elapsed(), b.eta())
}

// Start renders the initial state.
func (b *Bounded) Start() {
	b.Update()
}

func (b *Bounded) Do(fn func() error) error {
	return Run(b, fn)
}
