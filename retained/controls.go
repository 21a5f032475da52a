package retained

import (
	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/conui/tw"
)

// Simple controls: TextBlock, Button, CheckBox.

// ============================================================================
// TextBlock
// ============================================================================

// TextBlock displays a single line of read-only text.
type TextBlock struct {
	Control
	text string
}

// NewTextBlock creates a text block.
func NewTextBlock(text string) *TextBlock {
	t := &TextBlock{text: text}
	t.Init(t)
	return t
}

// Text returns the displayed text.
func (t *TextBlock) Text() string { return t.text }

// SetText replaces the displayed text.
func (t *TextBlock) SetText(text string) *TextBlock {
	if t.text != text {
		t.text = text
		t.Invalidate()
	}
	return t
}

// MeasureOverride wants the display width of the text and one row.
func (t *TextBlock) MeasureOverride(available Size) Size {
	return Size{runewidth.StringWidth(t.text), 1}
}

// ArrangeOverride takes whatever it is given.
func (t *TextBlock) ArrangeOverride(final Size) Size { return final }

func (t *TextBlock) Render(buf *Buffer) {
	buf.DrawString(0, 0, t.text, t.StyleAttr(t.VisualState()))
}

// ============================================================================
// Button
// ============================================================================

// ClickEvent is raised by buttons when activated. It bubbles.
var ClickEvent = RegisterRoutedEvent("Button", "Click", RoutingBubble)

// DefaultButtonClasses is the styling new buttons start with.
var DefaultButtonClasses = "text-black bg-cyan focus:bg-white pressed:bg-darkcyan disabled:text-darkgray"

// Button renders "[ caption ]" and raises ClickEvent on a left mouse press or
// Enter/Space while focused.
type Button struct {
	Control
	caption string
	pressed bool
}

// NewButton creates a focusable button.
func NewButton(caption string) *Button {
	b := &Button{caption: caption}
	b.Init(b)
	b.focusable = true
	b.SetClasses(DefaultButtonClasses)

	b.OnMouseDown(func(_ *Control, e *MouseButtonEventArgs) {
		if e.ChangedButton != MouseButtonLeft || b.disabled {
			return
		}
		b.setPressed(true)
		b.raiseClick()
		e.Handled = true
	})
	b.OnMouseUp(func(_ *Control, e *MouseButtonEventArgs) {
		if e.ChangedButton == MouseButtonLeft {
			b.setPressed(false)
		}
	})
	b.OnMouseMove(func(_ *Control, e *MouseEventArgs) {
		if e.Left == Released {
			b.setPressed(false)
		}
	})
	b.OnLostFocus(func(_ *Control, _ *FocusChangedEventArgs) {
		b.setPressed(false)
	})
	b.OnKeyDown(func(_ *Control, e *KeyEventArgs) {
		if b.disabled {
			return
		}
		if e.Key == KeyEnter || e.Key == KeySpace || (e.Key == KeyRune && e.Char == ' ') {
			b.raiseClick()
			e.Handled = true
		}
	})
	return b
}

// Caption returns the button text.
func (b *Button) Caption() string { return b.caption }

// SetCaption replaces the button text.
func (b *Button) SetCaption(caption string) *Button {
	if b.caption != caption {
		b.caption = caption
		b.Invalidate()
	}
	return b
}

// IsPressed reports whether the left button went down on the button and has
// not been released over it yet.
func (b *Button) IsPressed() bool { return b.pressed }

// OnClick registers a ClickEvent handler.
func (b *Button) OnClick(h Handler) HandlerID {
	return b.AddHandler(ClickEvent, h)
}

func (b *Button) setPressed(pressed bool) {
	if b.pressed != pressed {
		b.pressed = pressed
		b.InvalidateVisual()
	}
}

func (b *Button) raiseClick() {
	b.RaiseEvent(&RoutedEventArgs{RoutedEvent: ClickEvent})
}

func (b *Button) label() string { return "[ " + b.caption + " ]" }

// MeasureOverride wants the bracketed caption on one row.
func (b *Button) MeasureOverride(available Size) Size {
	return Size{runewidth.StringWidth(b.label()), 1}
}

// ArrangeOverride takes whatever it is given.
func (b *Button) ArrangeOverride(final Size) Size { return final }

func (b *Button) Render(buf *Buffer) {
	state := b.VisualState()
	if b.pressed && !b.disabled {
		state = tw.StatePressed
	}
	attr := b.StyleAttr(state)
	buf.FillRectangle(0, 0, buf.Width(), buf.Height(), ' ', attr)
	buf.DrawString(0, 0, b.label(), attr)
}

// ============================================================================
// CheckBox
// ============================================================================

// CheckedChangedEvent is raised by check boxes when toggled. It bubbles.
var CheckedChangedEvent = RegisterRoutedEvent("CheckBox", "CheckedChanged", RoutingBubble)

// CheckBox renders "[x] label" and toggles on a left mouse press or Space.
type CheckBox struct {
	Control
	label   string
	checked bool
}

// NewCheckBox creates a focusable, unchecked check box.
func NewCheckBox(label string) *CheckBox {
	cb := &CheckBox{label: label}
	cb.Init(cb)
	cb.focusable = true
	cb.cursorVisible = true
	cb.cursorPos = Point{1, 0}
	cb.SetClasses("focus:text-white")

	cb.OnMouseDown(func(_ *Control, e *MouseButtonEventArgs) {
		if e.ChangedButton != MouseButtonLeft || cb.disabled {
			return
		}
		cb.Toggle()
		e.Handled = true
	})
	// Space to toggle when focused
	cb.OnKeyDown(func(_ *Control, e *KeyEventArgs) {
		if cb.disabled {
			return
		}
		if e.Key == KeySpace || (e.Key == KeyRune && e.Char == ' ') {
			cb.Toggle()
			e.Handled = true
		}
	})
	return cb
}

// Checked returns whether the check box is checked.
func (cb *CheckBox) Checked() bool { return cb.checked }

// SetChecked sets the checked state, raising CheckedChangedEvent on change.
func (cb *CheckBox) SetChecked(checked bool) *CheckBox {
	if cb.checked != checked {
		cb.checked = checked
		cb.InvalidateVisual()
		cb.RaiseEvent(&RoutedEventArgs{RoutedEvent: CheckedChangedEvent})
	}
	return cb
}

// Toggle flips the checked state.
func (cb *CheckBox) Toggle() { cb.SetChecked(!cb.checked) }

// OnCheckedChanged registers a CheckedChangedEvent handler.
func (cb *CheckBox) OnCheckedChanged(h Handler) HandlerID {
	return cb.AddHandler(CheckedChangedEvent, h)
}

func (cb *CheckBox) text() string {
	mark := " "
	if cb.checked {
		mark = "x"
	}
	return "[" + mark + "] " + cb.label
}

// MeasureOverride wants the box and label on one row.
func (cb *CheckBox) MeasureOverride(available Size) Size {
	return Size{runewidth.StringWidth(cb.text()), 1}
}

// ArrangeOverride takes whatever it is given.
func (cb *CheckBox) ArrangeOverride(final Size) Size { return final }

func (cb *CheckBox) Render(buf *Buffer) {
	attr := cb.StyleAttr(cb.VisualState())
	buf.FillRectangle(0, 0, buf.Width(), buf.Height(), ' ', attr)
	buf.DrawString(0, 0, cb.text(), attr)
}
