package retained

import (
	"unicode"
)

// TextChangedEvent is raised by text boxes after an edit. It bubbles.
var TextChangedEvent = RegisterRoutedEvent("TextBox", "TextChanged", RoutingBubble)

// Default text box styling. The arrow classes color the "<" and ">"
// indicators shown when text is scrolled out of view.
var (
	DefaultTextBoxClasses      = "text-white bg-darkblue"
	DefaultTextBoxArrowClasses = "text-green bg-darkblue"
)

// TextBox is a single-line editable field Size columns wide, framed by one
// indicator column on each side. The visible window starts at the display
// offset; the cursor column ranges over 0..Size inside the window, so the
// insertion point is offset+cursor.
//
// Edits that cannot be applied (Backspace at the start, Delete at the end,
// typing past MaxLength) sound the bell instead.
type TextBox struct {
	Control

	text      []rune
	size      int
	maxLength int // 0 = no limit
	readOnly  bool

	// Editing state
	displayOffset int
	cursor        int

	charFilter func(r rune) bool
	arrowAttr  Attr
}

// NewTextBox creates an empty focusable text box size columns wide.
func NewTextBox(size int) *TextBox {
	t := &TextBox{size: max(0, size)}
	t.Init(t)
	t.focusable = true
	t.cursorVisible = true
	t.cursorPos = Point{1, 0}
	t.SetClasses(DefaultTextBoxClasses)
	t.SetArrowClasses(DefaultTextBoxArrowClasses)

	t.OnKeyDown(t.handleKeyDown)
	t.OnMouseDown(t.handleMouseDown)
	return t
}

// ============================================================================
// Properties
// ============================================================================

// Text returns the content.
func (t *TextBox) Text() string { return string(t.text) }

// SetText replaces the content and moves the cursor to the start.
func (t *TextBox) SetText(text string) *TextBox {
	if string(t.text) == text {
		return t
	}
	t.text = []rune(text)
	if t.maxLength > 0 && len(t.text) > t.maxLength {
		t.text = t.text[:t.maxLength]
	}
	t.displayOffset = 0
	t.setCursor(0)
	t.changed()
	return t
}

// Size returns the number of text columns.
func (t *TextBox) Size() int { return t.size }

// SetSize changes the number of text columns.
func (t *TextBox) SetSize(size int) *TextBox {
	size = max(0, size)
	if t.size != size {
		t.size = size
		t.setCursor(min(t.cursor, size))
		t.Invalidate()
	}
	return t
}

// MaxLength returns the content limit in runes, 0 for none.
func (t *TextBox) MaxLength() int { return t.maxLength }

// SetMaxLength limits the content length; 0 removes the limit. Existing
// content is not truncated.
func (t *TextBox) SetMaxLength(n int) *TextBox {
	t.maxLength = max(0, n)
	return t
}

// ReadOnly reports whether edits are refused.
func (t *TextBox) ReadOnly() bool { return t.readOnly }

// SetReadOnly allows cursor movement but refuses edits.
func (t *TextBox) SetReadOnly(readOnly bool) *TextBox {
	t.readOnly = readOnly
	return t
}

// SetCharFilter installs a predicate typed characters must satisfy.
func (t *TextBox) SetCharFilter(fn func(r rune) bool) *TextBox {
	t.charFilter = fn
	return t
}

// SetArrowClasses styles the scroll indicators.
func (t *TextBox) SetArrowClasses(classes string) *TextBox {
	if styles := resolveStyles(classes); styles != nil {
		fg, bg := styles.Base.Colors(t.attr.Foreground(), t.attr.Background())
		t.arrowAttr = MakeAttr(fg, bg)
	} else {
		t.arrowAttr = t.attr
	}
	t.InvalidateVisual()
	return t
}

// DisplayOffset returns the index of the first visible rune.
func (t *TextBox) DisplayOffset() int { return t.displayOffset }

// CursorColumn returns the cursor column inside the text window (0..Size).
func (t *TextBox) CursorColumn() int { return t.cursor }

// OnTextChanged registers a TextChangedEvent handler.
func (t *TextBox) OnTextChanged(h Handler) HandlerID {
	return t.AddHandler(TextChangedEvent, h)
}

func (t *TextBox) setCursor(col int) {
	t.cursor = col
	t.SetCursorPosition(Point{col + 1, 0})
}

func (t *TextBox) changed() {
	t.InvalidateVisual()
	t.RaiseEvent(&RoutedEventArgs{RoutedEvent: TextChangedEvent})
}

// ============================================================================
// Editing
// ============================================================================

// Insert types r at the cursor. It reports false (after beeping) when the
// box is read-only or full.
func (t *TextBox) Insert(r rune) bool {
	if t.readOnly || (t.maxLength > 0 && len(t.text) >= t.maxLength) {
		t.Beep()
		return false
	}
	at := t.displayOffset + t.cursor
	t.text = append(t.text, 0)
	copy(t.text[at+1:], t.text[at:])
	t.text[at] = r

	if t.cursor < t.size {
		t.setCursor(t.cursor + 1)
	} else {
		t.displayOffset++
	}
	t.changed()
	return true
}

func (t *TextBox) backspace() {
	at := t.displayOffset + t.cursor
	if t.readOnly || at == 0 {
		t.Beep()
		return
	}
	t.text = append(t.text[:at-1], t.text[at:]...)
	if t.displayOffset > 0 {
		t.displayOffset--
	} else {
		t.setCursor(t.cursor - 1)
	}
	t.changed()
}

func (t *TextBox) deleteForward() {
	at := t.displayOffset + t.cursor
	if t.readOnly || at >= len(t.text) {
		t.Beep()
		return
	}
	t.text = append(t.text[:at], t.text[at+1:]...)
	t.changed()
}

func (t *TextBox) moveLeft() {
	switch {
	case t.cursor > 0:
		t.setCursor(t.cursor - 1)
	case t.displayOffset > 0:
		t.displayOffset--
		t.InvalidateVisual()
	default:
		t.Beep()
	}
}

func (t *TextBox) moveRight() {
	if t.displayOffset+t.cursor >= len(t.text) {
		t.Beep()
		return
	}
	if t.cursor < t.size {
		t.setCursor(t.cursor + 1)
	} else {
		t.displayOffset++
		t.InvalidateVisual()
	}
}

func (t *TextBox) moveHome() {
	if t.displayOffset == 0 && t.cursor == 0 {
		t.Beep()
		return
	}
	t.displayOffset = 0
	t.setCursor(0)
	t.InvalidateVisual()
}

func (t *TextBox) moveEnd() {
	n := len(t.text)
	if t.displayOffset+t.cursor >= n {
		t.Beep()
		return
	}
	if n >= t.size {
		t.displayOffset = n - t.size
		t.setCursor(t.size)
	} else {
		t.displayOffset = 0
		t.setCursor(n)
	}
	t.InvalidateVisual()
}

func (t *TextBox) handleKeyDown(_ *Control, e *KeyEventArgs) {
	switch e.Key {
	case KeyBackspace:
		t.backspace()
	case KeyDelete:
		t.deleteForward()
	case KeyLeft:
		t.moveLeft()
	case KeyRight:
		t.moveRight()
	case KeyHome:
		t.moveHome()
	case KeyEnd:
		t.moveEnd()
	case KeySpace, KeyRune:
		ch := e.Char
		if e.Key == KeySpace {
			ch = ' '
		}
		if e.Modifiers.Ctrl() || e.Modifiers.Alt() || ch == 0 || unicode.IsControl(ch) {
			return
		}
		if t.charFilter != nil && !t.charFilter(ch) {
			t.Beep()
		} else {
			t.Insert(ch)
		}
	default:
		return
	}
	e.Handled = true
}

// handleMouseDown places the cursor under the pointer, limited to the end of
// the text.
func (t *TextBox) handleMouseDown(_ *Control, e *MouseButtonEventArgs) {
	p := e.GetPosition(&t.Control)
	if p.X <= 0 || p.X-1 >= t.size {
		return
	}
	x := p.X - 1
	if len(t.text) > 0 {
		t.setCursor(min(x, len(t.text)-t.displayOffset))
	}
	e.Handled = true
}

// ============================================================================
// Layout and Rendering
// ============================================================================

// MeasureOverride always wants Size text columns plus the two indicator
// columns, whatever is available.
func (t *TextBox) MeasureOverride(available Size) Size {
	return Size{t.size + 2, 1}
}

// ArrangeOverride keeps the fixed width; the parent's slot clips it.
func (t *TextBox) ArrangeOverride(final Size) Size {
	return Size{t.size + 2, 1}
}

func (t *TextBox) Render(buf *Buffer) {
	attr := t.StyleAttr(t.VisualState())
	buf.FillRectangle(0, 0, t.size+2, buf.Height(), ' ', attr)
	for i := t.displayOffset; i < len(t.text) && i-t.displayOffset < t.size; i++ {
		buf.SetPixelAttr(1+i-t.displayOffset, 0, t.text[i], attr)
	}
	if t.displayOffset > 0 {
		buf.SetPixelAttr(0, 0, '<', t.arrowAttr)
	}
	if t.size+t.displayOffset < len(t.text) {
		buf.SetPixelAttr(t.size+1, 0, '>', t.arrowAttr)
	}
}
