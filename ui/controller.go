package ui

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/countdown/countdown"
	"github.com/lixenwraith/countdown/input"
)

// Controller translates terminal events into widget operations
type Controller struct {
	view   *View
	widget *countdown.Widget
	keys   *input.KeyTable
	logger *zap.SugaredLogger

	lastButtons tcell.ButtonMask
}

// NewController creates a controller; nil keys selects the default table
func NewController(view *View, widget *countdown.Widget, keys *input.KeyTable, logger *zap.SugaredLogger) *Controller {
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Controller{
		view:   view,
		widget: widget,
		keys:   keys,
		logger: logger,
	}
}

// HandleEvent processes one event; returns false when the user asked to quit
func (c *Controller) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !c.handleKey(ev) {
			return false
		}
	case *tcell.EventMouse:
		c.handleMouse(ev)
	case *tcell.EventResize:
		c.view.Resize()
	default:
		return true
	}

	c.view.Invalidate()
	return true
}

func (c *Controller) handleKey(ev *tcell.EventKey) bool {
	if c.editField(ev) {
		return true
	}

	action, ok := c.keys.Resolve(ev)
	if !ok {
		return true
	}
	c.logger.Debugw("Key action", "action", action.String(), "focus", c.view.Focus().String())
	return c.dispatch(action)
}

// editField applies field editing keys; digits always land in the field
func (c *Controller) editField(ev *tcell.EventKey) bool {
	field := c.widget.Field()

	if ev.Key() == tcell.KeyRune && ev.Rune() >= '0' && ev.Rune() <= '9' {
		c.view.SetFocus(ControlField)
		field.Insert(ev.Rune())
		return true
	}

	if c.view.Focus() != ControlField {
		return false
	}

	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		field.DeleteBackward()
	case tcell.KeyDelete:
		field.DeleteForward()
	case tcell.KeyLeft:
		field.MoveLeft()
	case tcell.KeyRight:
		field.MoveRight()
	case tcell.KeyHome:
		field.MoveHome()
	case tcell.KeyEnd:
		field.MoveEnd()
	case tcell.KeyCtrlU:
		field.Clear()
	default:
		return false
	}
	return true
}

func (c *Controller) dispatch(action input.Action) bool {
	switch action {
	case input.ActionQuit:
		return false
	case input.ActionSet:
		c.widget.SetDuration()
	case input.ActionStart:
		c.widget.Start()
	case input.ActionPause:
		c.widget.Pause()
	case input.ActionToggle:
		c.widget.Toggle()
	case input.ActionReset:
		c.widget.Reset()
	case input.ActionFocusNext:
		c.view.FocusNext()
	case input.ActionFocusPrev:
		c.view.FocusPrev()
	case input.ActionActivate:
		c.activate(c.view.Focus())
	}
	return true
}

// activate performs the operation behind a control; the field commits like Set
func (c *Controller) activate(control Control) {
	switch control {
	case ControlField, ControlSet:
		c.widget.SetDuration()
	case ControlStart:
		c.widget.Start()
	case ControlPause:
		c.widget.Pause()
	case ControlReset:
		c.widget.Reset()
	}
}

// handleMouse activates a control on the Button1 press edge
func (c *Controller) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && c.lastButtons&tcell.Button1 == 0
	c.lastButtons = buttons
	if !pressed {
		return
	}

	x, y := ev.Position()
	control, ok := c.view.HitTest(x, y)
	if !ok {
		return
	}

	c.view.SetFocus(control)
	if control == ControlField {
		c.widget.Field().MoveEnd()
		return
	}
	c.logger.Debugw("Mouse activate", "control", control.String())
	c.activate(control)
}
