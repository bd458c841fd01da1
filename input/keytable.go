package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to actions
type KeyTable struct {
	// Printable keys
	Runes map[rune]Action

	// Special keys (Enter, Tab, Esc, Ctrl+*)
	Keys map[tcell.Key]Action
}

// DefaultKeyTable returns the built-in bindings
// Digits are not bound: they always edit the duration field
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Action{
			's': ActionStart,
			'p': ActionPause,
			' ': ActionToggle,
			'r': ActionReset,
			'q': ActionQuit,
		},
		Keys: map[tcell.Key]Action{
			tcell.KeyEnter:   ActionActivate,
			tcell.KeyTab:     ActionFocusNext,
			tcell.KeyBacktab: ActionFocusPrev,
			tcell.KeyLeft:    ActionFocusPrev,
			tcell.KeyRight:   ActionFocusNext,
			tcell.KeyEscape:  ActionQuit,
			tcell.KeyCtrlC:   ActionQuit,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		Runes: make(map[rune]Action, len(kt.Runes)),
		Keys:  make(map[tcell.Key]Action, len(kt.Keys)),
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	for k, v := range kt.Keys {
		out.Keys[k] = v
	}
	return out
}

// Resolve returns the action bound to ev
func (kt *KeyTable) Resolve(ev *tcell.EventKey) (Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := kt.Runes[ev.Rune()]
		return a, ok && a != ActionNone
	}
	a, ok := kt.Keys[ev.Key()]
	return a, ok && a != ActionNone
}
