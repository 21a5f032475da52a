package retained

// Input is a raw record read from the console. The router turns key and
// mouse records into routed event pairs; resize records change the tree's
// screen size.
type Input interface {
	isInput()
}

// KeyInput is a raw keyboard record.
type KeyInput struct {
	Char      rune
	Key       Key
	Modifiers Modifiers
	Down      bool
}

// MouseKind distinguishes the kinds of raw mouse record.
type MouseKind uint8

const (
	MouseKindMove MouseKind = iota
	MouseKindDown
	MouseKindUp
	MouseKindWheel
)

// MouseInput is a raw mouse record. Position is in screen space and the
// button fields carry the state after the record.
type MouseInput struct {
	Position            Point
	Left, Middle, Right ButtonState
	Kind                MouseKind
	WheelDelta          int
	Modifiers           Modifiers
}

// ResizeInput reports a new console size.
type ResizeInput struct {
	Size Size
}

func (KeyInput) isInput()    {}
func (MouseInput) isInput()  {}
func (ResizeInput) isInput() {}

func (m MouseInput) button(b MouseButton) ButtonState {
	switch b {
	case MouseButtonMiddle:
		return m.Middle
	case MouseButtonRight:
		return m.Right
	default:
		return m.Left
	}
}
