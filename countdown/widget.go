package countdown

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/lixenwraith/countdown/engine"
	"github.com/lixenwraith/countdown/status"
)

// Widget is the countdown timer: duration field, remaining time and run state
type Widget struct {
	sched    engine.Scheduler
	interval time.Duration
	machine  *fsm.FSM
	handle   engine.Handle

	field     *Field
	committed int // Last committed duration in seconds, 0 if none
	timeLeft  int
	closed    bool

	onExpire func()
	onChange func()

	logger *zap.SugaredLogger

	statTicks     *atomic.Int64
	statStarts    *atomic.Int64
	statCompleted *atomic.Int64
	statRunning   *atomic.Bool
}

// Option configures a Widget
type Option func(*Widget)

// WithLogger sets the widget logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRegistry publishes widget counters into reg
func WithRegistry(reg *status.Registry) Option {
	return func(w *Widget) {
		if reg != nil {
			w.bindRegistry(reg)
		}
	}
}

// WithInterval overrides the decrement period, one second by default
func WithInterval(d time.Duration) Option {
	return func(w *Widget) {
		if d > 0 {
			w.interval = d
		}
	}
}

// OnExpire registers a hook invoked once each time a countdown reaches zero
func OnExpire(fn func()) Option {
	return func(w *Widget) { w.onExpire = fn }
}

// OnChange registers a hook invoked after every state or time change
// The view uses it as its redraw trigger
func OnChange(fn func()) Option {
	return func(w *Widget) { w.onChange = fn }
}

// New mounts a widget with empty field, zero time left and Idle state
func New(sched engine.Scheduler, opts ...Option) *Widget {
	w := &Widget{
		sched:    sched,
		interval: engine.DefaultTickInterval,
		field:    NewField(),
		logger:   zap.NewNop().Sugar(),
	}
	w.bindRegistry(status.NewRegistry())

	for _, opt := range opts {
		opt(w)
	}

	w.machine = newRunStateMachine(w.startAction, w.stopAction)
	return w
}

func (w *Widget) bindRegistry(reg *status.Registry) {
	w.statTicks = reg.Ints.Get(status.KeyTicks)
	w.statStarts = reg.Ints.Get(status.KeyStarts)
	w.statCompleted = reg.Ints.Get(status.KeyCompleted)
	w.statRunning = reg.Bools.Get(status.KeyRunning)
}

// --- Accessors ---

// Field returns the duration input field
func (w *Widget) Field() *Field {
	return w.field
}

// Duration parses the field; ok is false unless it holds a positive integer
func (w *Widget) Duration() (seconds int, ok bool) {
	return parseDuration(w.field.Value())
}

// Committed returns the last committed duration, 0 if none
func (w *Widget) Committed() int {
	return w.committed
}

// TimeLeft returns remaining seconds
func (w *Widget) TimeLeft() int {
	return w.timeLeft
}

// State returns the current run state
func (w *Widget) State() RunState {
	return RunState(w.machine.Current())
}

// Display returns the remaining time as MM:SS
func (w *Widget) Display() string {
	return FormatTime(w.timeLeft)
}

// StartLabel is "Resume" while paused, "Start" otherwise
func (w *Widget) StartLabel() string {
	if w.State() == Paused {
		return "Resume"
	}
	return "Start"
}

// Closed reports whether the widget has been unmounted
func (w *Widget) Closed() bool {
	return w.closed
}

// --- Operations ---

// SetDuration commits the field value: TimeLeft takes the duration and the
// widget returns to Idle. Invalid field text is ignored without any change
func (w *Widget) SetDuration() {
	if w.closed {
		return
	}
	d, ok := w.Duration()
	if !ok {
		w.logger.Debugw("Ignoring invalid duration", "input", w.field.Value())
		return
	}

	w.fire(eventSet)
	w.committed = d
	w.timeLeft = d
	w.logger.Infow("Duration set", "seconds", d)
	w.changed()
}

// Start enters Running when time is left; also resumes from Paused
func (w *Widget) Start() {
	if w.closed || w.timeLeft <= 0 {
		return
	}
	if w.fire(eventStart) {
		w.logger.Infow("Countdown started", "time_left", w.timeLeft)
		w.changed()
	}
}

// Pause suspends a running countdown, retaining TimeLeft exactly
func (w *Widget) Pause() {
	if w.closed {
		return
	}
	if w.fire(eventPause) {
		w.logger.Infow("Countdown paused", "time_left", w.timeLeft)
		w.changed()
	}
}

// Toggle pauses when running and starts otherwise
func (w *Widget) Toggle() {
	if w.State() == Running {
		w.Pause()
		return
	}
	w.Start()
}

// Reset returns to Idle with TimeLeft restored from the field, or 0 when the
// field does not hold a positive integer
func (w *Widget) Reset() {
	if w.closed {
		return
	}
	w.fire(eventReset)

	if d, ok := w.Duration(); ok {
		w.committed = d
		w.timeLeft = d
	} else {
		w.timeLeft = 0
	}
	w.logger.Infow("Countdown reset", "time_left", w.timeLeft)
	w.changed()
}

// Close unmounts the widget, cancelling any outstanding decrement action
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.stopAction()
	w.machine.SetState(string(Idle))
	w.closed = true
	w.logger.Debug("Widget closed")
}

// tick is the decrement action, one call per elapsed interval while Running
func (w *Widget) tick() {
	if w.closed || w.State() != Running {
		return
	}

	w.timeLeft--
	if w.timeLeft < 0 {
		w.timeLeft = 0
	}
	w.statTicks.Add(1)

	if w.timeLeft == 0 {
		w.fire(eventExpire)
		w.statCompleted.Add(1)
		w.logger.Infow("Countdown finished", "duration", w.committed)
		if w.onExpire != nil {
			w.onExpire()
		}
	}
	w.changed()
}

// --- Internals ---

// fire sends event to the state machine, reporting whether a transition happened
func (w *Widget) fire(event string) bool {
	err := w.machine.Event(context.Background(), event)
	if err == nil {
		return true
	}
	if isNoop(err) {
		w.logger.Debugw("Event ignored", "event", event, "state", w.machine.Current())
	} else {
		w.logger.Warnw("State transition failed", "event", event, "error", err)
	}
	return false
}

// startAction replaces any outstanding decrement action with a new one
func (w *Widget) startAction() {
	w.stopAction()
	w.handle = w.sched.Every(w.interval, w.tick)
	w.statStarts.Add(1)
	w.statRunning.Store(true)
}

// stopAction cancels the outstanding decrement action, if any
func (w *Widget) stopAction() {
	if w.handle != nil {
		w.handle.Stop()
		w.handle = nil
	}
	w.statRunning.Store(false)
}

func (w *Widget) changed() {
	if w.onChange != nil {
		w.onChange()
	}
}

// parseDuration accepts a positive base-10 integer, surrounding spaces allowed
func parseDuration(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
