package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/countdown/countdown"
	"github.com/lixenwraith/countdown/status"
)

// Control identifies a focusable element of the widget
type Control int

const (
	ControlField Control = iota
	ControlSet
	ControlStart
	ControlPause
	ControlReset
	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlField:
		return "field"
	case ControlSet:
		return "set"
	case ControlStart:
		return "start"
	case ControlPause:
		return "pause"
	case ControlReset:
		return "reset"
	}
	return "unknown"
}

// Rect is a screen rectangle in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout constants
const (
	minCardWidth  = 36
	maxCardWidth  = 48
	compactHeight = 8                  // card rows with one-line time display
	bigHeight     = 14                 // card rows with block-digit time display
	footerHeight  = 1
	buttonGap     = 2
	title         = " Countdown Timer "
	keyHints      = "Tab focus  Enter activate  s start  p pause  r reset  q quit"
)

// View draws a countdown widget on a tcell screen
// Drawing is explicit: callers Invalidate after changes and Flush to redraw
type View struct {
	screen tcell.Screen
	widget *countdown.Widget
	reg    *status.Registry
	theme  Theme

	focus Control
	hits  map[Control]Rect
	dirty bool
}

// NewView creates a view; reg may be nil to hide counters
func NewView(screen tcell.Screen, widget *countdown.Widget, reg *status.Registry) *View {
	return &View{
		screen: screen,
		widget: widget,
		reg:    reg,
		theme:  DefaultTheme(),
		hits:   make(map[Control]Rect, int(controlCount)),
		dirty:  true,
	}
}

// --- Focus ---

func (v *View) Focus() Control {
	return v.focus
}

func (v *View) SetFocus(c Control) {
	if c >= 0 && c < controlCount {
		v.focus = c
		v.dirty = true
	}
}

func (v *View) FocusNext() {
	v.SetFocus((v.focus + 1) % controlCount)
}

func (v *View) FocusPrev() {
	v.SetFocus((v.focus + controlCount - 1) % controlCount)
}

// HitTest returns the control drawn at (x, y) during the last Draw
func (v *View) HitTest(x, y int) (Control, bool) {
	for c, r := range v.hits {
		if r.Contains(x, y) {
			return c, true
		}
	}
	return 0, false
}

// Bounds returns the rectangle of c from the last Draw
func (v *View) Bounds(c Control) (Rect, bool) {
	r, ok := v.hits[c]
	return r, ok
}

// --- Redraw ---

// Invalidate marks the view for redraw on the next Flush
func (v *View) Invalidate() {
	v.dirty = true
}

// Flush redraws if anything changed since the last Draw
func (v *View) Flush() {
	if v.dirty {
		v.Draw()
	}
}

// Resize resynchronizes the screen after a terminal size change
func (v *View) Resize() {
	v.screen.Sync()
	v.dirty = true
}

// Draw renders the whole widget and shows the frame
func (v *View) Draw() {
	v.dirty = false
	v.hits = make(map[Control]Rect, int(controlCount))
	v.screen.HideCursor()

	w, h := v.screen.Size()
	v.fill(Rect{W: w, H: h}, v.theme.style(v.theme.Fg, v.theme.Bg))

	if w < minCardWidth || h < compactHeight+footerHeight {
		v.text(0, 0, "Terminal too small", v.theme.style(v.theme.Warn, v.theme.Bg))
		v.screen.Show()
		return
	}

	big := h >= bigHeight+footerHeight
	cardH := compactHeight
	if big {
		cardH = bigHeight
	}
	cardW := clamp(w-4, minCardWidth, maxCardWidth)
	card := Rect{X: (w - cardW) / 2, Y: (h - footerHeight - cardH) / 2, W: cardW, H: cardH}
	v.drawCard(card)

	inner := Rect{X: card.X + 2, Y: card.Y + 1, W: card.W - 4, H: card.H - 2}
	y := inner.Y
	if big {
		y++
	}

	v.drawFieldRow(inner, y)
	y += 2

	if big && v.drawBlockTime(inner, y) {
		y += glyphHeight + 1
	} else {
		v.drawTextTime(inner, y)
		y += 2
		if big {
			y += glyphHeight - 1
		}
	}

	v.drawButtons(inner, y)
	y++
	if big {
		y++
	}

	v.drawStateLine(inner, y)
	v.drawFooter(w, h)

	v.screen.Show()
}

func (v *View) drawCard(card Rect) {
	t := v.theme
	bg := t.style(t.Fg, t.CardBg)
	border := t.style(t.Border, t.CardBg)

	v.fill(card, bg)

	right := card.X + card.W - 1
	bottom := card.Y + card.H - 1
	for x := card.X + 1; x < right; x++ {
		v.screen.SetContent(x, card.Y, tcell.RuneHLine, nil, border)
		v.screen.SetContent(x, bottom, tcell.RuneHLine, nil, border)
	}
	for y := card.Y + 1; y < bottom; y++ {
		v.screen.SetContent(card.X, y, tcell.RuneVLine, nil, border)
		v.screen.SetContent(right, y, tcell.RuneVLine, nil, border)
	}
	v.screen.SetContent(card.X, card.Y, tcell.RuneULCorner, nil, border)
	v.screen.SetContent(right, card.Y, tcell.RuneURCorner, nil, border)
	v.screen.SetContent(card.X, bottom, tcell.RuneLLCorner, nil, border)
	v.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, border)

	titleX := card.X + (card.W-len(title))/2
	v.text(titleX, card.Y, title, t.style(t.Accent, t.CardBg).Bold(true))
}

func (v *View) drawFieldRow(inner Rect, y int) {
	t := v.theme
	setLabel := " Set "
	fieldW := inner.W - len(setLabel) - 1
	fieldRect := Rect{X: inner.X, Y: y, W: fieldW, H: 1}
	setRect := Rect{X: inner.X + fieldW + 1, Y: y, W: len(setLabel), H: 1}

	focused := v.focus == ControlField
	fieldBg := t.FieldBg
	if focused {
		fieldBg = t.FocusBg
	}
	v.fill(fieldRect, t.style(t.Fg, fieldBg))

	field := v.widget.Field()
	textW := fieldW - 2
	if field.Empty() {
		v.text(fieldRect.X+1, y, truncate(countdown.Placeholder, textW), t.style(t.Dim, fieldBg))
	} else {
		scroll := 0
		if field.Cursor > textW-1 {
			scroll = field.Cursor - (textW - 1)
		}
		visible := field.Text[min(scroll, len(field.Text)):]
		v.text(fieldRect.X+1, y, truncate(string(visible), textW), t.style(t.FocusFg, fieldBg))
		if focused {
			v.screen.ShowCursor(fieldRect.X+1+field.Cursor-scroll, y)
		}
	}
	if focused && field.Empty() {
		v.screen.ShowCursor(fieldRect.X+1, y)
	}

	v.drawButton(setRect, setLabel, ControlSet)
	v.hits[ControlField] = fieldRect
}

// drawBlockTime draws the large display; false when it does not fit
func (v *View) drawBlockTime(inner Rect, y int) bool {
	display := v.widget.Display()
	width := blockWidth(display)
	if width > inner.W {
		return false
	}

	style := v.theme.style(v.timeColor(), v.theme.CardBg)
	x := inner.X + (inner.W-width)/2
	for i, line := range BlockLines(display) {
		v.text(x, y+i, line, style)
	}
	return true
}

func (v *View) drawTextTime(inner Rect, y int) {
	display := v.widget.Display()
	x := inner.X + (inner.W-len(display))/2
	v.text(x, y, display, v.theme.style(v.timeColor(), v.theme.CardBg).Bold(true))
}

func (v *View) timeColor() tcell.Color {
	switch v.widget.State() {
	case countdown.Running:
		return v.theme.Good
	case countdown.Paused:
		return v.theme.Warn
	}
	if v.widget.TimeLeft() == 0 && v.widget.Committed() > 0 {
		return v.theme.Alert
	}
	return v.theme.Fg
}

func (v *View) drawButtons(inner Rect, y int) {
	buttons := []struct {
		label   string
		control Control
	}{
		{" " + v.widget.StartLabel() + " ", ControlStart},
		{" Pause ", ControlPause},
		{" Reset ", ControlReset},
	}

	total := buttonGap * (len(buttons) - 1)
	for _, b := range buttons {
		total += len(b.label)
	}

	x := inner.X + (inner.W-total)/2
	for _, b := range buttons {
		r := Rect{X: x, Y: y, W: len(b.label), H: 1}
		v.drawButton(r, b.label, b.control)
		x += r.W + buttonGap
	}
}

func (v *View) drawButton(r Rect, label string, c Control) {
	t := v.theme
	style := t.style(t.Fg, t.LabelBg)
	if v.focus == c {
		style = t.style(t.FocusFg, t.FocusBg).Bold(true)
	}
	v.text(r.X, r.Y, label, style)
	v.hits[c] = r
}

func (v *View) drawStateLine(inner Rect, y int) {
	line := v.widget.State().Label()
	if d := v.widget.Committed(); d > 0 {
		line = fmt.Sprintf("%s | set %s", line, countdown.FormatTime(d))
	}
	x := inner.X + (inner.W-len(line))/2
	v.text(x, y, line, v.theme.style(v.theme.Dim, v.theme.CardBg))
}

func (v *View) drawFooter(w, h int) {
	t := v.theme
	y := h - footerHeight
	style := t.style(t.Dim, t.FooterBg)
	v.fill(Rect{X: 0, Y: y, W: w, H: footerHeight}, style)

	right := ""
	if v.reg != nil {
		snap := v.reg.Snapshot()
		right = fmt.Sprintf("ticks %d  done %d ", snap[status.KeyTicks], snap[status.KeyCompleted])
	}

	leftW := w - len(right) - 2
	v.text(1, y, truncate(keyHints, leftW), style)
	if right != "" && leftW > 0 {
		v.text(w-len(right), y, right, style)
	}
}

// --- Drawing primitives ---

func (v *View) fill(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// text draws s from (x, y), clipped to the screen; returns the next column
func (v *View) text(x, y int, s string, style tcell.Style) int {
	w, h := v.screen.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range s {
		if x >= 0 && x < w {
			v.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
