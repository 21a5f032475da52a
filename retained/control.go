// Package retained provides a retained-mode control tree for text consoles.
//
// Controls form a tree. Input is routed along the tree as tunnel/bubble
// event pairs, layout is negotiated in two passes (measure, then arrange),
// and every frame is produced by rendering each control into its own buffer
// and composing it into its parent's, clipped to the slot the parent gave it.
//
// The whole tree is driven from a single goroutine; nothing in this package
// blocks except Loop.Run waiting for input.
package retained

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/agiangrant/conui/tw"
)

// ControlID uniquely identifies a control for the lifetime of the process.
type ControlID uint64

var nextControlID atomic.Uint64

func newControlID() ControlID {
	return ControlID(nextControlID.Add(1))
}

// Structural errors returned by Attach, Insert and Detach.
var (
	ErrNilControl      = errors.New("retained: nil control")
	ErrAlreadyAttached = errors.New("retained: control already has a parent")
	ErrCycle           = errors.New("retained: attaching would create a cycle")
	ErrNotChild        = errors.New("retained: control is not a child")
)

// Element is implemented by every control. Concrete controls embed Control,
// call Init with themselves, and override the layout and render hooks they
// need; *Control itself provides the defaults.
type Element interface {
	// Base returns the embedded tree node.
	Base() *Control

	// MeasureOverride reports the size the control would like given the
	// available size. Containers measure their children here.
	MeasureOverride(available Size) Size

	// ArrangeOverride positions children within final and returns the size
	// the control actually occupies.
	ArrangeOverride(final Size) Size

	// Render draws the control into buf, which is sized to the control's
	// actual size. buf is only valid for the duration of the call.
	Render(buf *Buffer)
}

// Control is a node of the visual tree. The zero value is not usable; create
// plain containers with NewControl or embed Control and call Init.
//
// A plain Control lays its children on top of each other: each child is
// measured against the full available size and arranged into the full final
// rect, and later children draw over earlier ones.
type Control struct {
	id   ControlID
	self Element
	name string

	// Tree structure. children is the owning collection; parent is only
	// followed upward (routing, translation, invalidation).
	parent   *Control
	children []*Control
	tree     *Tree

	// Layout state
	desired       Size // from the last measure
	lastAvailable Size
	slot          Rect // rect offered by the parent in the last arrange
	actual        Rect // arranged bounds in parent space
	measureValid  bool
	arrangeValid  bool

	// Interactive state
	visible   bool
	focusable bool
	focused   bool
	disabled  bool

	// Cursor, in local coordinates, published when the control has focus.
	cursorVisible bool
	cursorPos     Point

	// Visual properties
	attr           Attr
	classes        string
	computedStyles *tw.ComputedStyles

	// Routed event registrations
	handlers      map[*RoutedEvent][]handlerEntry
	nextHandlerID HandlerID

	// Custom data for application use
	data any
}

// NewControl creates a plain overlay container.
func NewControl() *Control {
	c := &Control{}
	c.Init(c)
	return c
}

// Init prepares an embedded Control. self is the concrete control whose
// overrides the tree should call.
func (c *Control) Init(self Element) {
	c.id = newControlID()
	c.self = self
	c.visible = true
	c.attr = DefaultAttr
}

// Base returns c.
func (c *Control) Base() *Control { return c }

// Element returns the concrete control c was initialized with.
func (c *Control) Element() Element { return c.self }

// ID returns the control's unique identifier.
func (c *Control) ID() ControlID { return c.id }

// Name returns the optional debug name.
func (c *Control) Name() string { return c.name }

// SetName sets a debug name used in logs and String.
func (c *Control) SetName(name string) *Control {
	c.name = name
	return c
}

func (c *Control) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("%T#%d", c.self, c.id)
}

// Data returns the application data attached to the control.
func (c *Control) Data() any { return c.data }

// SetData attaches arbitrary application data.
func (c *Control) SetData(data any) *Control {
	c.data = data
	return c
}

// ============================================================================
// Tree Structure
// ============================================================================

// Parent returns the control's parent, or nil for a root.
func (c *Control) Parent() *Control { return c.parent }

// Children returns a copy of the children in z-order (insertion order).
func (c *Control) Children() []*Control {
	result := make([]*Control, len(c.children))
	copy(result, c.children)
	return result
}

// ChildCount returns the number of children.
func (c *Control) ChildCount() int { return len(c.children) }

// Tree returns the tree the control is attached to, or nil.
func (c *Control) Tree() *Tree { return c.tree }

// IsAttached reports whether the control belongs to a tree.
func (c *Control) IsAttached() bool { return c.tree != nil }

// IsAncestorOf reports whether c is a strict ancestor of other.
func (c *Control) IsAncestorOf(other *Control) bool {
	if other == nil {
		return false
	}
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == c {
			return true
		}
	}
	return false
}

// Attach appends child as the topmost child.
func (c *Control) Attach(child Element) error {
	return c.Insert(len(c.children), child)
}

// Insert adds child at index (clamped to the child count). It fails without
// mutating anything when child already has a parent, is the root of a tree,
// or is c or one of c's ancestors.
func (c *Control) Insert(index int, child Element) error {
	if child == nil {
		return ErrNilControl
	}
	cb := child.Base()
	if cb == nil || cb.self == nil {
		return ErrNilControl
	}
	if cb == c || cb.IsAncestorOf(c) {
		return fmt.Errorf("attach %v to %v: %w", cb, c, ErrCycle)
	}
	if cb.parent != nil || (cb.tree != nil && cb.tree.root == cb) {
		return fmt.Errorf("attach %v to %v: %w", cb, c, ErrAlreadyAttached)
	}

	index = max(0, min(index, len(c.children)))
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = cb
	cb.parent = c
	setTree(cb, c.tree)

	c.Invalidate()
	return nil
}

// Detach removes child from c. If the detached subtree held keyboard focus,
// focus is cleared and the focused control receives LostKeyboardFocus.
func (c *Control) Detach(child Element) error {
	if child == nil {
		return ErrNilControl
	}
	cb := child.Base()
	idx := -1
	for i, ch := range c.children {
		if ch == cb {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("detach %v from %v: %w", cb, c, ErrNotChild)
	}

	c.children = append(c.children[:idx], c.children[idx+1:]...)
	cb.parent = nil
	oldTree := cb.tree
	setTree(cb, nil)
	c.Invalidate()

	if oldTree != nil {
		oldTree.focus.subtreeDetached(cb)
	}
	return nil
}

// DetachFromParent removes c from its parent, if any.
func (c *Control) DetachFromParent() error {
	if c.parent == nil {
		return nil
	}
	return c.parent.Detach(c)
}

// setTree propagates the tree pointer through a subtree.
func setTree(c *Control, t *Tree) {
	c.tree = t
	for _, ch := range c.children {
		setTree(ch, t)
	}
}

// ============================================================================
// Invalidation
// ============================================================================

// Invalidate marks the control's layout dirty up to the root and schedules a
// layout pass and repaint. Passes are batched: nothing runs until the tree
// next updates layout.
func (c *Control) Invalidate() {
	for cur := c; cur != nil; cur = cur.parent {
		cur.measureValid = false
		cur.arrangeValid = false
	}
	if c.tree != nil {
		c.tree.scheduleLayout()
	}
}

// InvalidateVisual schedules a repaint without touching layout.
func (c *Control) InvalidateVisual() {
	if c.tree != nil {
		c.tree.scheduleRender()
	}
}

// ============================================================================
// Layout
// ============================================================================

// DesiredSize returns the size computed by the last measure.
func (c *Control) DesiredSize() Size { return c.desired }

// ActualRect returns the arranged bounds in parent space.
func (c *Control) ActualRect() Rect { return c.actual }

// ActualWidth returns the arranged width.
func (c *Control) ActualWidth() int { return c.actual.Width }

// ActualHeight returns the arranged height.
func (c *Control) ActualHeight() int { return c.actual.Height }

// LayoutSlot returns the rect the parent offered in the last arrange. The
// control's rendering is clipped to it.
func (c *Control) LayoutSlot() Rect { return c.slot }

// Measure asks the control for its desired size under available. Results
// are cached until the control is invalidated or available changes.
// Invisible controls take no space.
func (c *Control) Measure(available Size) Size {
	available = available.clamp()
	if c.measureValid && available == c.lastAvailable {
		return c.desired
	}
	var desired Size
	if c.visible {
		desired = c.self.MeasureOverride(available).clamp()
	}
	c.desired = desired
	c.lastAvailable = available
	c.measureValid = true
	c.arrangeValid = false
	return desired
}

// Arrange assigns the control's final rect in parent space and returns the
// rect it actually occupies, which may be larger or smaller than final.
func (c *Control) Arrange(final Rect) Rect {
	final = NewRect(final.Origin(), final.Size())
	if c.arrangeValid && final == c.slot {
		return c.actual
	}
	c.slot = final
	if c.visible {
		c.actual = NewRect(final.Origin(), c.self.ArrangeOverride(final.Size()))
	} else {
		c.actual = Rect{X: final.X, Y: final.Y}
	}
	c.arrangeValid = true
	return c.actual
}

// MeasureOverride measures every child against the full available size and
// returns the largest desired extent.
func (c *Control) MeasureOverride(available Size) Size {
	var desired Size
	for _, ch := range c.children {
		d := ch.Measure(available)
		desired.Width = max(desired.Width, d.Width)
		desired.Height = max(desired.Height, d.Height)
	}
	return desired
}

// ArrangeOverride gives every child the whole final rect.
func (c *Control) ArrangeOverride(final Size) Size {
	for _, ch := range c.children {
		ch.Arrange(NewRect(Point{}, final))
	}
	return final
}

// Render draws nothing; the buffer is already filled with the control's
// attribute.
func (c *Control) Render(buf *Buffer) {}

// ============================================================================
// Visibility, Focus and Cursor
// ============================================================================

// Visible reports whether the control takes part in layout, rendering and
// hit testing.
func (c *Control) Visible() bool { return c.visible }

// SetVisible shows or hides the control. Hiding the focused control or one
// of its ancestors clears focus.
func (c *Control) SetVisible(visible bool) *Control {
	if c.visible == visible {
		return c
	}
	c.visible = visible
	if !visible && c.tree != nil {
		if f := c.tree.focus.Focused(); f != nil && (f == c || c.IsAncestorOf(f)) {
			c.tree.focus.ClearFocus()
		}
	}
	c.Invalidate()
	return c
}

// Focusable reports whether the control may own keyboard focus.
func (c *Control) Focusable() bool { return c.focusable }

// SetFocusable changes whether the control may own keyboard focus.
func (c *Control) SetFocusable(focusable bool) *Control {
	c.focusable = focusable
	return c
}

// Enabled reports whether the control accepts focus and input.
func (c *Control) Enabled() bool { return !c.disabled }

// SetEnabled enables or disables the control. Disabling the focused control
// clears focus.
func (c *Control) SetEnabled(enabled bool) *Control {
	if c.disabled == !enabled {
		return c
	}
	c.disabled = !enabled
	if c.disabled && c.focused && c.tree != nil {
		c.tree.focus.ClearFocus()
	}
	c.InvalidateVisual()
	return c
}

// IsFocused reports whether the control owns keyboard focus.
func (c *Control) IsFocused() bool { return c.focused }

// Focus asks the tree's focus manager to focus c. It is a no-op returning
// false when c is not focusable, disabled or not attached.
func (c *Control) Focus() bool {
	if c.tree == nil {
		return false
	}
	return c.tree.focus.SetFocus(c)
}

// CursorVisible reports whether the control wants the console cursor shown
// while it has focus.
func (c *Control) CursorVisible() bool { return c.cursorVisible }

// SetCursorVisible shows or hides the cursor while focused.
func (c *Control) SetCursorVisible(visible bool) *Control {
	if c.cursorVisible != visible {
		c.cursorVisible = visible
		c.InvalidateVisual()
	}
	return c
}

// CursorPosition returns the cursor position in local coordinates.
func (c *Control) CursorPosition() Point { return c.cursorPos }

// SetCursorPosition moves the cursor (local coordinates).
func (c *Control) SetCursorPosition(p Point) *Control {
	if c.cursorPos != p {
		c.cursorPos = p
		c.InvalidateVisual()
	}
	return c
}

// Beep asks the console to sound the bell, if the tree has a beeper.
func (c *Control) Beep() {
	if c.tree != nil {
		c.tree.Beep()
	}
}

// ============================================================================
// Visual Properties
// ============================================================================

// Attr returns the attribute the control's buffer is cleared with.
func (c *Control) Attr() Attr { return c.attr }

// SetAttr sets the attribute the control's buffer is cleared with.
func (c *Control) SetAttr(attr Attr) *Control {
	if c.attr != attr {
		c.attr = attr
		c.InvalidateVisual()
	}
	return c
}
