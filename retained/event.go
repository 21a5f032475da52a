package retained

import (
	"fmt"
	"sync"
)

// ============================================================================
// Routed Event Identity
// ============================================================================

// RoutingStrategy decides which controls on the route see an event.
type RoutingStrategy uint8

const (
	// RoutingDirect - only the target control is invoked.
	RoutingDirect RoutingStrategy = iota

	// RoutingTunnel - invoked from the root down to the target.
	// Ancestors get the first look (global shortcuts, modal capture).
	RoutingTunnel

	// RoutingBubble - invoked from the target up to the root.
	// Ancestors get the last look (default or fallback behavior).
	RoutingBubble
)

func (s RoutingStrategy) String() string {
	switch s {
	case RoutingDirect:
		return "direct"
	case RoutingTunnel:
		return "tunnel"
	case RoutingBubble:
		return "bubble"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// RoutedEvent is the identity of an event that travels along the tree.
// Identities are compared by pointer; create them with RegisterRoutedEvent.
type RoutedEvent struct {
	owner    string
	name     string
	strategy RoutingStrategy
}

// Name returns the event name.
func (e *RoutedEvent) Name() string { return e.name }

// Owner returns the name of the type that registered the event.
func (e *RoutedEvent) Owner() string { return e.owner }

// Strategy returns how the event is routed.
func (e *RoutedEvent) Strategy() RoutingStrategy { return e.strategy }

func (e *RoutedEvent) String() string { return e.owner + "." + e.name }

var (
	eventRegistryMu sync.Mutex
	eventRegistry   = make(map[string]*RoutedEvent)
)

// RegisterRoutedEvent returns the event registered under owner.name,
// creating it on first use. Registering an existing name returns the
// original identity and ignores strategy.
func RegisterRoutedEvent(owner, name string, strategy RoutingStrategy) *RoutedEvent {
	eventRegistryMu.Lock()
	defer eventRegistryMu.Unlock()

	key := owner + "." + name
	if ev, ok := eventRegistry[key]; ok {
		return ev
	}
	ev := &RoutedEvent{owner: owner, name: name, strategy: strategy}
	eventRegistry[key] = ev
	return ev
}

// LookupRoutedEvent finds a previously registered event.
func LookupRoutedEvent(owner, name string) (*RoutedEvent, bool) {
	eventRegistryMu.Lock()
	defer eventRegistryMu.Unlock()
	ev, ok := eventRegistry[owner+"."+name]
	return ev, ok
}

// Built-in events. Input events come in pairs: the Preview variant tunnels
// first, then the plain variant bubbles.
var (
	PreviewKeyDownEvent = RegisterRoutedEvent("Control", "PreviewKeyDown", RoutingTunnel)
	KeyDownEvent        = RegisterRoutedEvent("Control", "KeyDown", RoutingBubble)
	PreviewKeyUpEvent   = RegisterRoutedEvent("Control", "PreviewKeyUp", RoutingTunnel)
	KeyUpEvent          = RegisterRoutedEvent("Control", "KeyUp", RoutingBubble)

	PreviewMouseDownEvent  = RegisterRoutedEvent("Control", "PreviewMouseDown", RoutingTunnel)
	MouseDownEvent         = RegisterRoutedEvent("Control", "MouseDown", RoutingBubble)
	PreviewMouseUpEvent    = RegisterRoutedEvent("Control", "PreviewMouseUp", RoutingTunnel)
	MouseUpEvent           = RegisterRoutedEvent("Control", "MouseUp", RoutingBubble)
	PreviewMouseMoveEvent  = RegisterRoutedEvent("Control", "PreviewMouseMove", RoutingTunnel)
	MouseMoveEvent         = RegisterRoutedEvent("Control", "MouseMove", RoutingBubble)
	PreviewMouseWheelEvent = RegisterRoutedEvent("Control", "PreviewMouseWheel", RoutingTunnel)
	MouseWheelEvent        = RegisterRoutedEvent("Control", "MouseWheel", RoutingBubble)

	GotKeyboardFocusEvent  = RegisterRoutedEvent("Control", "GotKeyboardFocus", RoutingBubble)
	LostKeyboardFocusEvent = RegisterRoutedEvent("Control", "LostKeyboardFocus", RoutingBubble)
)

// ============================================================================
// Event Arguments
// ============================================================================

// EventArgs is implemented by every routed event payload.
type EventArgs interface {
	// RoutedArgs returns the common part of the payload.
	RoutedArgs() *RoutedEventArgs
}

// RoutedEventArgs carries the routing state shared by all payloads.
type RoutedEventArgs struct {
	// Source is the control the event was raised on (the route target).
	Source *Control

	// RoutedEvent is the identity being routed.
	RoutedEvent *RoutedEvent

	// Handled stops ordinary handlers for the remainder of the current pass.
	Handled bool
}

func (a *RoutedEventArgs) RoutedArgs() *RoutedEventArgs { return a }

// KeyEventArgs is the payload of key events.
type KeyEventArgs struct {
	RoutedEventArgs

	// Char is the produced character, 0 for non-printing keys.
	Char rune

	// Key identifies non-character keys. KeyRune for printable input.
	Key Key

	Modifiers Modifiers
	IsKeyDown bool
}

// ButtonState is the state of one mouse button.
type ButtonState uint8

const (
	Released ButtonState = iota
	Pressed
)

// MouseButton identifies which mouse button changed.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
)

// MouseEventArgs is the payload of mouse move events and the base of the
// other mouse payloads.
type MouseEventArgs struct {
	RoutedEventArgs

	// RawPosition is the pointer position in screen space.
	RawPosition Point

	Left, Middle, Right ButtonState
	Modifiers           Modifiers
}

// GetPosition returns the pointer position in relativeTo's local space.
// A nil relativeTo returns screen coordinates.
func (e *MouseEventArgs) GetPosition(relativeTo *Control) Point {
	return TranslatePoint(nil, e.RawPosition, relativeTo)
}

// MouseButtonEventArgs is the payload of mouse down and up events.
type MouseButtonEventArgs struct {
	MouseEventArgs

	ChangedButton MouseButton
	ClickCount    int
}

// ButtonState returns the current state of the button that changed.
func (e *MouseButtonEventArgs) ButtonState() ButtonState {
	switch e.ChangedButton {
	case MouseButtonMiddle:
		return e.Middle
	case MouseButtonRight:
		return e.Right
	default:
		return e.Left
	}
}

// MouseWheelEventArgs is the payload of wheel events.
type MouseWheelEventArgs struct {
	MouseEventArgs

	// Delta is positive when scrolling up.
	Delta int
}

// FocusChangedEventArgs is the payload of focus events.
type FocusChangedEventArgs struct {
	RoutedEventArgs

	OldFocus, NewFocus *Control
}

// ============================================================================
// Event Handler Types
// ============================================================================

// Handler is the generic routed event callback. sender is the control the
// handler is registered on, which differs from args.Source during routing.
type Handler func(sender *Control, args EventArgs)

// KeyHandler is a callback for keyboard events.
type KeyHandler func(sender *Control, e *KeyEventArgs)

// MouseHandler is a callback for mouse move events.
type MouseHandler func(sender *Control, e *MouseEventArgs)

// MouseButtonHandler is a callback for mouse down and up events.
type MouseButtonHandler func(sender *Control, e *MouseButtonEventArgs)

// MouseWheelHandler is a callback for wheel events.
type MouseWheelHandler func(sender *Control, e *MouseWheelEventArgs)

// FocusHandler is a callback for focus events.
type FocusHandler func(sender *Control, e *FocusChangedEventArgs)

// HandlerID identifies a registration so it can be removed.
type HandlerID uint64

type handlerEntry struct {
	id               HandlerID
	fn               Handler
	handledEventsToo bool
}
