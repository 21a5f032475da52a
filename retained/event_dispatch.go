package retained

import (
	"log/slog"
	"time"
)

// ============================================================================
// Event Router
// ============================================================================

// DispatchResult reports whether a raw input reached any control.
type DispatchResult uint8

const (
	// Delivered - the input was routed to a target (handled or not).
	Delivered DispatchResult = iota
	// Undelivered - no target existed (no focus, pointer over nothing).
	Undelivered
)

func (r DispatchResult) String() string {
	if r == Delivered {
		return "delivered"
	}
	return "undelivered"
}

// EventRouter turns raw console input into routed events. It hit-tests mouse
// records, sends keys to the focused control, tracks button state to find
// which button changed, and counts multi-clicks.
type EventRouter struct {
	tree *Tree

	// Button state after the previous mouse record
	buttons      [3]ButtonState
	lastPosition Point

	// For click counting
	lastClickTime   time.Time
	lastClickPos    Point
	lastClickButton MouseButton
	clickCount      int

	// Configuration
	doubleClickTime time.Duration
	tabNavigation   bool
	now             func() time.Time
}

func newEventRouter(tree *Tree, config TreeConfig) *EventRouter {
	now := config.Clock
	if now == nil {
		now = time.Now
	}
	return &EventRouter{
		tree:            tree,
		doubleClickTime: config.DoubleClickTime,
		tabNavigation:   config.TabNavigation,
		now:             now,
	}
}

// LastMousePosition returns the screen position of the last mouse record.
func (r *EventRouter) LastMousePosition() Point { return r.lastPosition }

// ============================================================================
// Hit Testing
// ============================================================================

// HitTest returns the deepest visible control whose visible region contains
// the screen point, preferring later (topmost) siblings. It returns nil when
// the point lies outside the root.
func (r *EventRouter) HitTest(p Point) *Control {
	root := r.tree.root
	if root == nil {
		return nil
	}
	return hitTestRecursive(root, p, Point{})
}

// hitTestRecursive tests c, whose parent's origin is at parentOrigin in
// screen space. A control is hit only inside its rect clipped to its slot,
// the same region rendering exposes.
func hitTestRecursive(c *Control, p Point, parentOrigin Point) *Control {
	if !c.visible {
		return nil
	}
	visibleRect := c.actual.Intersect(c.slot).Offset(parentOrigin)
	if !visibleRect.Contains(p) {
		return nil
	}

	origin := parentOrigin.Add(c.actual.Origin())
	// Check children in reverse order (last child is drawn on top)
	for i := len(c.children) - 1; i >= 0; i-- {
		if target := hitTestRecursive(c.children[i], p, origin); target != nil {
			return target
		}
	}
	return c
}

// ============================================================================
// Raising Events
// ============================================================================

// RaiseEvent routes args to target according to its event's strategy.
func (r *EventRouter) RaiseEvent(target *Control, args EventArgs) {
	if target == nil || args == nil {
		return
	}
	raiseEvent(target, args)
}

// RaiseEvent routes args with c as the source. Events can be raised on
// detached subtrees; the route then ends at the subtree root.
func (c *Control) RaiseEvent(args EventArgs) {
	if args == nil {
		return
	}
	raiseEvent(c, args)
}

func raiseEvent(target *Control, args EventArgs) {
	ra := args.RoutedArgs()
	if ra.RoutedEvent == nil {
		return
	}
	ra.Source = target

	if ra.RoutedEvent.strategy == RoutingDirect {
		target.invokeHandlers(args)
		return
	}

	route := acquireRoute()
	defer releaseRoute(route)
	buildRoute(target, route)
	chain := *route

	if ra.RoutedEvent.strategy == RoutingTunnel {
		for _, c := range chain {
			c.invokeHandlers(args)
		}
		return
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].invokeHandlers(args)
	}
}

// buildRoute fills route with the path from the topmost ancestor to target.
func buildRoute(target *Control, route *[]*Control) {
	s := (*route)[:0]
	for cur := target; cur != nil; cur = cur.parent {
		s = append(s, cur)
	}
	// Reverse to root-first
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	*route = s
}

// raisePair raises the tunneling preview then the bubbling event. Each pass
// has its own args, so a preview handled flag does not suppress the bubble.
func raisePair(target *Control, preview, bubble EventArgs) {
	raiseEvent(target, preview)
	raiseEvent(target, bubble)
}

// ============================================================================
// Dispatch
// ============================================================================

// Dispatch routes one raw input record.
func (r *EventRouter) Dispatch(in Input) DispatchResult {
	switch in := in.(type) {
	case KeyInput:
		return r.DispatchKey(in)
	case MouseInput:
		return r.DispatchMouse(in)
	case ResizeInput:
		r.tree.Resize(in.Size)
		return Delivered
	}
	return Undelivered
}

// DispatchKey raises the key pair on the focused control. An unhandled
// Tab or Shift+Tab key-down moves focus when tab navigation is enabled.
func (r *EventRouter) DispatchKey(in KeyInput) DispatchResult {
	target := r.tree.focus.Focused()
	if target == nil {
		r.tree.logger.Debug("key input undelivered", slog.String("key", in.Key.String()), slog.String("reason", "no focus"))
		return Undelivered
	}

	previewEvent, bubbleEvent := PreviewKeyUpEvent, KeyUpEvent
	if in.Down {
		previewEvent, bubbleEvent = PreviewKeyDownEvent, KeyDownEvent
	}
	newArgs := func(ev *RoutedEvent) *KeyEventArgs {
		return &KeyEventArgs{
			RoutedEventArgs: RoutedEventArgs{RoutedEvent: ev},
			Char:            in.Char,
			Key:             in.Key,
			Modifiers:       in.Modifiers,
			IsKeyDown:       in.Down,
		}
	}
	bubble := newArgs(bubbleEvent)
	raisePair(target, newArgs(previewEvent), bubble)

	if in.Down && !bubble.Handled && r.tabNavigation {
		switch {
		case in.Key == KeyBacktab, in.Key == KeyTab && in.Modifiers.Shift():
			r.tree.focus.MoveNext(true)
		case in.Key == KeyTab:
			r.tree.focus.MoveNext(false)
		}
	}
	return Delivered
}

// DispatchMouse hit-tests the record and raises the matching pair on the
// deepest control under the pointer. A button press first focuses the
// nearest focusable control on the route.
func (r *EventRouter) DispatchMouse(in MouseInput) DispatchResult {
	changed := r.changedButton(in)
	r.buttons = [3]ButtonState{in.Left, in.Middle, in.Right}
	r.lastPosition = in.Position

	r.tree.UpdateLayout()
	target := r.HitTest(in.Position)
	if target == nil {
		r.tree.logger.Debug("mouse input undelivered",
			slog.Int("x", in.Position.X), slog.Int("y", in.Position.Y),
			slog.String("reason", "no control at position"))
		return Undelivered
	}

	base := func(ev *RoutedEvent) MouseEventArgs {
		return MouseEventArgs{
			RoutedEventArgs: RoutedEventArgs{RoutedEvent: ev},
			RawPosition:     in.Position,
			Left:            in.Left,
			Middle:          in.Middle,
			Right:           in.Right,
			Modifiers:       in.Modifiers,
		}
	}

	switch in.Kind {
	case MouseKindDown:
		for cur := target; cur != nil; cur = cur.parent {
			if cur.focusable {
				r.tree.focus.SetFocus(cur)
				break
			}
		}
		count := r.countClick(in.Position, changed)
		newArgs := func(ev *RoutedEvent) *MouseButtonEventArgs {
			return &MouseButtonEventArgs{MouseEventArgs: base(ev), ChangedButton: changed, ClickCount: count}
		}
		raisePair(target, newArgs(PreviewMouseDownEvent), newArgs(MouseDownEvent))

	case MouseKindUp:
		newArgs := func(ev *RoutedEvent) *MouseButtonEventArgs {
			return &MouseButtonEventArgs{MouseEventArgs: base(ev), ChangedButton: changed, ClickCount: r.clickCount}
		}
		raisePair(target, newArgs(PreviewMouseUpEvent), newArgs(MouseUpEvent))

	case MouseKindWheel:
		newArgs := func(ev *RoutedEvent) *MouseWheelEventArgs {
			return &MouseWheelEventArgs{MouseEventArgs: base(ev), Delta: in.WheelDelta}
		}
		raisePair(target, newArgs(PreviewMouseWheelEvent), newArgs(MouseWheelEvent))

	default:
		preview, bubble := base(PreviewMouseMoveEvent), base(MouseMoveEvent)
		raisePair(target, &preview, &bubble)
	}
	return Delivered
}

// changedButton compares in against the previous button state. Records that
// change nothing report the left button.
func (r *EventRouter) changedButton(in MouseInput) MouseButton {
	want, was := Pressed, Released
	if in.Kind == MouseKindUp {
		want, was = Released, Pressed
	}
	for _, b := range []MouseButton{MouseButtonLeft, MouseButtonMiddle, MouseButtonRight} {
		if in.button(b) == want && r.buttons[b] == was {
			return b
		}
	}
	return MouseButtonLeft
}

// countClick tracks repeated presses of the same button at the same cell
// within the double-click interval. The count restarts after a triple click.
func (r *EventRouter) countClick(p Point, button MouseButton) int {
	now := r.now()
	if r.clickCount > 0 && r.clickCount < 3 &&
		button == r.lastClickButton && p == r.lastClickPos &&
		now.Sub(r.lastClickTime) <= r.doubleClickTime {
		r.clickCount++
	} else {
		r.clickCount = 1
	}
	r.lastClickTime = now
	r.lastClickPos = p
	r.lastClickButton = button
	return r.clickCount
}
