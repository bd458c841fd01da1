package engine

import (
	"time"
)

// ManualScheduler is a deterministic Scheduler driven by a ManualClock
// Fires happen synchronously inside Advance, in deadline order
type ManualScheduler struct {
	clock   *ManualClock
	entries []*manualEntry
	fires   int
}

type manualEntry struct {
	interval time.Duration
	next     time.Time
	fn       func()
	active   bool
}

func (e *manualEntry) Stop()        { e.active = false }
func (e *manualEntry) Active() bool { return e.active }

// NewManualScheduler creates a scheduler over clock
func NewManualScheduler(clock *ManualClock) *ManualScheduler {
	return &ManualScheduler{clock: clock}
}

// Every registers fn to fire each interval after the current mock time
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	e := &manualEntry{
		interval: interval,
		next:     m.clock.Now().Add(interval),
		fn:       fn,
		active:   true,
	}
	m.entries = append(m.entries, e)
	return e
}

// Advance moves the clock forward by d, firing every deadline reached on the way
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.clock.Now().Add(d)

	for {
		due := m.earliestDue(target)
		if due == nil {
			break
		}
		m.clock.Set(due.next)
		due.next = due.next.Add(due.interval)
		m.fires++
		due.fn()
	}

	m.clock.Set(target)
	m.prune()
}

// Outstanding returns the number of active actions
func (m *ManualScheduler) Outstanding() int {
	n := 0
	for _, e := range m.entries {
		if e.active {
			n++
		}
	}
	return n
}

// Fires returns the total number of executed fires
func (m *ManualScheduler) Fires() int {
	return m.fires
}

func (m *ManualScheduler) earliestDue(target time.Time) *manualEntry {
	var due *manualEntry
	for _, e := range m.entries {
		if !e.active || e.next.After(target) {
			continue
		}
		if due == nil || e.next.Before(due.next) {
			due = e
		}
	}
	return due
}

func (m *ManualScheduler) prune() {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.active {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(m.entries); i++ {
		m.entries[i] = nil
	}
	m.entries = kept
}
