package countdown

// DefaultFieldMaxLen bounds the duration field to 999999 seconds
const DefaultFieldMaxLen = 6

// Placeholder is shown by the view while the field is empty
const Placeholder = "Enter duration in seconds"

// Field holds the editable duration text
// Keyboard edits accept ASCII digits only; SetText stores text verbatim
type Field struct {
	Text   []rune
	Cursor int // Position before which the cursor sits (0 = before first char)
	MaxLen int
}

// NewField creates an empty field with the default length limit
func NewField() *Field {
	return &Field{MaxLen: DefaultFieldMaxLen}
}

// Value returns current text as string
func (f *Field) Value() string {
	return string(f.Text)
}

// Empty reports whether the field holds no text
func (f *Field) Empty() bool {
	return len(f.Text) == 0
}

// SetText replaces text and moves cursor to end
func (f *Field) SetText(s string) {
	f.Text = []rune(s)
	f.Cursor = len(f.Text)
}

// Clear empties the field
func (f *Field) Clear() {
	f.Text = nil
	f.Cursor = 0
}

// Insert adds a digit at cursor position, rejecting anything else
func (f *Field) Insert(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	if f.MaxLen > 0 && len(f.Text) >= f.MaxLen {
		return false
	}
	f.clampCursor()
	f.Text = append(f.Text[:f.Cursor], append([]rune{r}, f.Text[f.Cursor:]...)...)
	f.Cursor++
	return true
}

// DeleteBackward removes rune before cursor
func (f *Field) DeleteBackward() bool {
	f.clampCursor()
	if f.Cursor > 0 {
		f.Text = append(f.Text[:f.Cursor-1], f.Text[f.Cursor:]...)
		f.Cursor--
		return true
	}
	return false
}

// DeleteForward removes rune at cursor
func (f *Field) DeleteForward() bool {
	f.clampCursor()
	if f.Cursor < len(f.Text) {
		f.Text = append(f.Text[:f.Cursor], f.Text[f.Cursor+1:]...)
		return true
	}
	return false
}

// --- Cursor movement ---

func (f *Field) MoveLeft() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

func (f *Field) MoveRight() {
	if f.Cursor < len(f.Text) {
		f.Cursor++
	}
}

func (f *Field) MoveHome() {
	f.Cursor = 0
}

func (f *Field) MoveEnd() {
	f.Cursor = len(f.Text)
}

func (f *Field) clampCursor() {
	if f.Cursor < 0 {
		f.Cursor = 0
	}
	if f.Cursor > len(f.Text) {
		f.Cursor = len(f.Text)
	}
}
