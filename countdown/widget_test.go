package countdown

import (
	"strconv"
	"testing"
	"time"

	"github.com/lixenwraith/countdown/engine"
	"github.com/lixenwraith/countdown/status"
)

func newTestWidget(t *testing.T, opts ...Option) (*Widget, *engine.ManualScheduler) {
	t.Helper()
	clock := engine.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := engine.NewManualScheduler(clock)
	return New(sched, opts...), sched
}

func setDuration(w *Widget, text string) {
	w.Field().SetText(text)
	w.SetDuration()
}

func TestNew_Defaults(t *testing.T) {
	w, sched := newTestWidget(t)

	if w.State() != Idle {
		t.Errorf("Expected Idle, got %s", w.State())
	}
	if w.TimeLeft() != 0 {
		t.Errorf("Expected 0 time left, got %d", w.TimeLeft())
	}
	if w.Display() != "00:00" {
		t.Errorf("Expected 00:00, got %q", w.Display())
	}
	if !w.Field().Empty() {
		t.Error("Expected empty field")
	}
	if sched.Outstanding() != 0 {
		t.Error("Expected no scheduled action at mount")
	}
}

func TestSetDuration_DisplaysDuration(t *testing.T) {
	for _, d := range []int{1, 5, 59, 60, 61, 125, 3599, 5999, 6000} {
		w, _ := newTestWidget(t)
		setDuration(w, strconv.Itoa(d))

		if w.TimeLeft() != d {
			t.Errorf("d=%d: expected TimeLeft %d, got %d", d, d, w.TimeLeft())
		}
		if w.Display() != FormatTime(d) {
			t.Errorf("d=%d: expected display %q, got %q", d, FormatTime(d), w.Display())
		}
		if w.State() != Idle {
			t.Errorf("d=%d: expected Idle, got %s", d, w.State())
		}
	}
}

func TestSetDuration_125Displays0205(t *testing.T) {
	w, _ := newTestWidget(t)
	setDuration(w, "125")

	if got := w.Display(); got != "02:05" {
		t.Errorf("Expected 02:05, got %q", got)
	}
}

func TestSetDuration_InvalidInputIgnored(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Zero", "0"},
		{"Negative", "-5"},
		{"NonNumeric", "abc"},
		{"Fractional", "2.5"},
		{"Whitespace", "   "},
		{"Overflow", "99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWidget(t)
			setDuration(w, "30")

			setDuration(w, tt.input)

			if w.TimeLeft() != 30 {
				t.Errorf("Expected TimeLeft unchanged at 30, got %d", w.TimeLeft())
			}
			if w.Committed() != 30 {
				t.Errorf("Expected committed unchanged at 30, got %d", w.Committed())
			}
		})
	}
}

func TestSetDuration_InvalidDoesNotStopRunning(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()

	setDuration(w, "0")

	if w.State() != Running {
		t.Fatalf("Expected still Running, got %s", w.State())
	}
	sched.Advance(time.Second)
	if w.TimeLeft() != 9 {
		t.Errorf("Expected 9 after one tick, got %d", w.TimeLeft())
	}
}

func TestSetDuration_WhileRunningStopsAndIdles(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()
	sched.Advance(2 * time.Second)

	setDuration(w, "20")

	if w.State() != Idle {
		t.Errorf("Expected Idle, got %s", w.State())
	}
	if sched.Outstanding() != 0 {
		t.Errorf("Expected decrement action cancelled, %d outstanding", sched.Outstanding())
	}
	sched.Advance(5 * time.Second)
	if w.TimeLeft() != 20 {
		t.Errorf("Expected TimeLeft frozen at 20, got %d", w.TimeLeft())
	}
}

func TestStart_NoopWithZeroTimeLeft(t *testing.T) {
	w, sched := newTestWidget(t)

	w.Start()

	if w.State() != Idle {
		t.Errorf("Expected Idle, got %s", w.State())
	}
	if sched.Outstanding() != 0 {
		t.Error("Expected no scheduled action")
	}
}

func TestStart_OneTickDecrementsByOne(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()

	if w.State() != Running {
		t.Fatalf("Expected Running, got %s", w.State())
	}

	sched.Advance(999 * time.Millisecond)
	if w.TimeLeft() != 10 {
		t.Fatalf("Expected no decrement before a full second, got %d", w.TimeLeft())
	}
	sched.Advance(time.Millisecond)
	if w.TimeLeft() != 9 {
		t.Errorf("Expected 9 after one tick, got %d", w.TimeLeft())
	}
}

func TestStart_WhileRunningDoesNotDuplicateAction(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()
	w.Start()
	w.Start()

	if sched.Outstanding() != 1 {
		t.Fatalf("Expected exactly one outstanding action, got %d", sched.Outstanding())
	}
	sched.Advance(3 * time.Second)
	if w.TimeLeft() != 7 {
		t.Errorf("Expected 7 after three ticks, got %d", w.TimeLeft())
	}
}

func TestPause_FreezesTimeLeft(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()
	sched.Advance(2 * time.Second)

	w.Pause()
	frozen := w.TimeLeft()

	sched.Advance(3 * time.Second)

	if w.State() != Paused {
		t.Errorf("Expected Paused, got %s", w.State())
	}
	if w.TimeLeft() != frozen || frozen != 8 {
		t.Errorf("Expected TimeLeft frozen at 8, got %d (paused at %d)", w.TimeLeft(), frozen)
	}
	if sched.Outstanding() != 0 {
		t.Errorf("Expected action cancelled on pause, %d outstanding", sched.Outstanding())
	}
}

func TestPause_NoopWhenNotRunning(t *testing.T) {
	w, _ := newTestWidget(t)
	setDuration(w, "10")

	w.Pause()

	if w.State() != Idle {
		t.Errorf("Expected Idle, got %s", w.State())
	}
	if w.StartLabel() != "Start" {
		t.Errorf("Expected Start label, got %q", w.StartLabel())
	}
}

func TestResume_ContinuesFromPausedValue(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()
	sched.Advance(1500 * time.Millisecond)
	w.Pause()

	if w.StartLabel() != "Resume" {
		t.Errorf("Expected Resume label while paused, got %q", w.StartLabel())
	}

	w.Start()
	if w.State() != Running {
		t.Fatalf("Expected Running after resume, got %s", w.State())
	}
	if w.StartLabel() != "Start" {
		t.Errorf("Expected Start label while running, got %q", w.StartLabel())
	}

	// Resume restarts a full interval
	sched.Advance(999 * time.Millisecond)
	if w.TimeLeft() != 9 {
		t.Fatalf("Expected 9 before the restarted interval elapses, got %d", w.TimeLeft())
	}
	sched.Advance(time.Millisecond)
	if w.TimeLeft() != 8 {
		t.Errorf("Expected 8 after resume tick, got %d", w.TimeLeft())
	}
}

func TestReset_RestoresCommittedDuration(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()
	sched.Advance(4 * time.Second)

	w.Reset()

	if w.TimeLeft() != 10 {
		t.Errorf("Expected 10 after reset, got %d", w.TimeLeft())
	}
	if w.State() != Idle {
		t.Errorf("Expected Idle, got %s", w.State())
	}
	if sched.Outstanding() != 0 {
		t.Errorf("Expected action cancelled, %d outstanding", sched.Outstanding())
	}
}

func TestReset_FromPaused(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()
	sched.Advance(3 * time.Second)
	w.Pause()

	w.Reset()

	if w.State() != Idle || w.TimeLeft() != 10 {
		t.Errorf("Expected Idle at 10, got %s at %d", w.State(), w.TimeLeft())
	}
	if w.StartLabel() != "Start" {
		t.Errorf("Expected Start label after reset, got %q", w.StartLabel())
	}
}

func TestReset_NoDurationGivesZero(t *testing.T) {
	w, _ := newTestWidget(t)

	w.Reset()

	if w.TimeLeft() != 0 || w.State() != Idle {
		t.Errorf("Expected Idle at 0, got %s at %d", w.State(), w.TimeLeft())
	}
}

func TestReset_InvalidFieldGivesZero(t *testing.T) {
	w, _ := newTestWidget(t)
	setDuration(w, "10")
	w.Field().Clear()

	w.Reset()

	if w.TimeLeft() != 0 {
		t.Errorf("Expected 0 with empty field, got %d", w.TimeLeft())
	}
}

func TestTick_ReachesZeroAndStops(t *testing.T) {
	expired := 0
	w, sched := newTestWidget(t, OnExpire(func() { expired++ }))
	setDuration(w, "5")
	w.Start()

	sched.Advance(5 * time.Second)

	if w.TimeLeft() != 0 {
		t.Errorf("Expected 0, got %d", w.TimeLeft())
	}
	if w.Display() != "00:00" {
		t.Errorf("Expected 00:00, got %q", w.Display())
	}
	if w.State() == Running {
		t.Error("Expected not Running after reaching zero")
	}
	if sched.Outstanding() != 0 {
		t.Errorf("Expected action cancelled at zero, %d outstanding", sched.Outstanding())
	}
	if expired != 1 {
		t.Errorf("Expected one expiry, got %d", expired)
	}

	sched.Advance(10 * time.Second)
	if w.TimeLeft() != 0 || expired != 1 {
		t.Errorf("Expected no further ticks, TimeLeft=%d expired=%d", w.TimeLeft(), expired)
	}
}

func TestTick_StartAfterExpiryIsNoop(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "1")
	w.Start()
	sched.Advance(time.Second)

	w.Start()

	if w.State() != Idle {
		t.Errorf("Expected Idle, got %s", w.State())
	}
	if sched.Outstanding() != 0 {
		t.Error("Expected no action after start at zero")
	}
}

func TestTick_DoesNotAutoReset(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "2")
	w.Start()
	sched.Advance(2 * time.Second)

	if w.TimeLeft() != 0 {
		t.Errorf("Expected to stay at 0, got %d", w.TimeLeft())
	}
	if w.Committed() != 2 {
		t.Errorf("Expected committed duration kept, got %d", w.Committed())
	}
}

func TestOnChange_CalledOnTransitions(t *testing.T) {
	changes := 0
	w, sched := newTestWidget(t, OnChange(func() { changes++ }))

	setDuration(w, "3") // 1
	w.Start()           // 2
	sched.Advance(time.Second)
	w.Pause() // 4
	w.Pause() // no-op
	w.Reset() // 5

	if changes != 5 {
		t.Errorf("Expected 5 change notifications, got %d", changes)
	}
}

func TestClose_CancelsAction(t *testing.T) {
	w, sched := newTestWidget(t)
	setDuration(w, "10")
	w.Start()

	w.Close()

	if sched.Outstanding() != 0 {
		t.Errorf("Expected action cancelled on close, %d outstanding", sched.Outstanding())
	}
	sched.Advance(5 * time.Second)
	if w.TimeLeft() != 10 {
		t.Errorf("Expected no ticks after close, got %d", w.TimeLeft())
	}

	w.Start()
	if sched.Outstanding() != 0 || !w.Closed() {
		t.Error("Expected operations after close to be no-ops")
	}
}

func TestRegistry_CountersUpdated(t *testing.T) {
	reg := status.NewRegistry()
	w, sched := newTestWidget(t, WithRegistry(reg))
	setDuration(w, "3")
	w.Start()

	if !reg.Bools.Get(status.KeyRunning).Load() {
		t.Error("Expected running flag set")
	}

	sched.Advance(3 * time.Second)

	snap := reg.Snapshot()
	if snap[status.KeyTicks] != 3 {
		t.Errorf("Expected 3 ticks, got %d", snap[status.KeyTicks])
	}
	if snap[status.KeyStarts] != 1 {
		t.Errorf("Expected 1 start, got %d", snap[status.KeyStarts])
	}
	if snap[status.KeyCompleted] != 1 {
		t.Errorf("Expected 1 completion, got %d", snap[status.KeyCompleted])
	}
	if reg.Bools.Get(status.KeyRunning).Load() {
		t.Error("Expected running flag cleared after completion")
	}
}

func TestWithInterval_ShortensTick(t *testing.T) {
	w, sched := newTestWidget(t, WithInterval(100*time.Millisecond))
	setDuration(w, "5")
	w.Start()

	sched.Advance(300 * time.Millisecond)

	if w.TimeLeft() != 2 {
		t.Errorf("Expected 2 after three short ticks, got %d", w.TimeLeft())
	}
}

func TestToggle(t *testing.T) {
	w, _ := newTestWidget(t)
	setDuration(w, "5")

	w.Toggle()
	if w.State() != Running {
		t.Fatalf("Expected Running, got %s", w.State())
	}
	w.Toggle()
	if w.State() != Paused {
		t.Fatalf("Expected Paused, got %s", w.State())
	}
	w.Toggle()
	if w.State() != Running {
		t.Errorf("Expected Running after second toggle, got %s", w.State())
	}
}
