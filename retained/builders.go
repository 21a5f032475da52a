package retained

// Builder helpers for common control patterns.
// These provide a fluent API for constructing UI trees. They panic if a
// child already has a parent, which is a construction bug.

// Container creates a plain overlay container.
func Container(classes string) *Control {
	c := NewControl()
	if classes != "" {
		c.SetClasses(classes)
	}
	return c
}

// Overlay creates a container whose children are layered on top of each
// other, later children drawn over earlier ones.
func Overlay(classes string, children ...Element) *Control {
	c := Container(classes)
	attachAll(c, children)
	return c
}

// VStack creates a vertical stack.
// Children are laid out top-to-bottom.
func VStack(classes string, children ...Element) *Panel {
	p := NewPanel(Vertical)
	if classes != "" {
		p.SetClasses(classes)
	}
	attachAll(&p.Control, children)
	return p
}

// HStack creates a horizontal stack.
// Children are laid out left-to-right.
func HStack(classes string, children ...Element) *Panel {
	p := NewPanel(Horizontal)
	if classes != "" {
		p.SetClasses(classes)
	}
	attachAll(&p.Control, children)
	return p
}

// Label creates a styled text block.
func Label(text string, classes string) *TextBlock {
	t := NewTextBlock(text)
	if classes != "" {
		t.SetClasses(classes)
	}
	return t
}

// Field creates a text box with initial text.
func Field(size int, text string) *TextBox {
	return NewTextBox(size).SetText(text)
}

// ActionButton creates a button with a click handler.
func ActionButton(caption string, onClick func()) *Button {
	b := NewButton(caption)
	if onClick != nil {
		b.OnClick(func(*Control, EventArgs) { onClick() })
	}
	return b
}

func attachAll(parent *Control, children []Element) {
	for _, child := range children {
		if err := parent.Attach(child); err != nil {
			panic(err)
		}
	}
}
