package input

// Action is a widget-level command produced by a key binding
type Action uint8

const (
	ActionNone Action = iota
	ActionSet
	ActionStart
	ActionPause
	ActionToggle
	ActionReset
	ActionQuit
	ActionFocusNext
	ActionFocusPrev
	ActionActivate
)

// actionRegistry maps canonical action names used in config to actions
// "none" unbinds a key when merged over the defaults
var actionRegistry = map[string]Action{
	"none":       ActionNone,
	"set":        ActionSet,
	"start":      ActionStart,
	"pause":      ActionPause,
	"toggle":     ActionToggle,
	"reset":      ActionReset,
	"quit":       ActionQuit,
	"focus_next": ActionFocusNext,
	"focus_prev": ActionFocusPrev,
	"activate":   ActionActivate,
}

// ActionByName resolves a config action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

// String returns the config name of the action
func (a Action) String() string {
	for name, act := range actionRegistry {
		if act == a {
			return name
		}
	}
	return "unknown"
}
