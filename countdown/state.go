package countdown

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// RunState is the current countdown activity status
type RunState string

const (
	Idle    RunState = "idle"
	Running RunState = "running"
	Paused  RunState = "paused"
)

func (s RunState) String() string {
	return string(s)
}

// Label returns the upper-case state name shown in the view
func (s RunState) Label() string {
	switch s {
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	default:
		return "IDLE"
	}
}

// FSM events
const (
	eventStart  = "start"
	eventPause  = "pause"
	eventExpire = "expire"
	eventReset  = "reset"
	eventSet    = "set"
)

var allStates = []string{string(Idle), string(Running), string(Paused)}

// runStateEvents is the transition table of the widget
var runStateEvents = fsm.Events{
	{Name: eventStart, Src: []string{string(Idle), string(Paused)}, Dst: string(Running)},
	{Name: eventPause, Src: []string{string(Running)}, Dst: string(Paused)},
	{Name: eventExpire, Src: []string{string(Running)}, Dst: string(Idle)},
	{Name: eventReset, Src: allStates, Dst: string(Idle)},
	{Name: eventSet, Src: allStates, Dst: string(Idle)},
}

// newRunStateMachine builds the state machine; onEnterRunning and onLeaveRunning
// own the decrement action so every exit path out of Running cancels it
func newRunStateMachine(onEnterRunning, onLeaveRunning func()) *fsm.FSM {
	return fsm.NewFSM(
		string(Idle),
		runStateEvents,
		fsm.Callbacks{
			"enter_" + string(Running): func(_ context.Context, _ *fsm.Event) {
				onEnterRunning()
			},
			"leave_" + string(Running): func(_ context.Context, _ *fsm.Event) {
				onLeaveRunning()
			},
		},
	)
}

// isNoop reports whether a transition error means the event did not apply
// in the current state, which the widget treats as a silent no-op
func isNoop(err error) bool {
	var noTransition fsm.NoTransitionError
	var invalid fsm.InvalidEventError
	return errors.As(err, &noTransition) || errors.As(err, &invalid)
}
