package retained

import "log/slog"

// FocusManager owns the tree's single keyboard focus.
type FocusManager struct {
	tree    *Tree
	focused *Control
}

// Focused returns the control owning keyboard focus, or nil.
func (f *FocusManager) Focused() *Control { return f.focused }

// SetFocus moves keyboard focus to c. It returns false and changes nothing
// when c is nil, not focusable, disabled or not attached to this tree. Focusing the
// already focused control returns true without raising events. It also
// returns false when a LostKeyboardFocus handler moved focus elsewhere.
//
// The old owner receives LostKeyboardFocus before the new owner receives
// GotKeyboardFocus; both bubble.
func (f *FocusManager) SetFocus(c *Control) bool {
	if c == nil || !c.focusable || c.disabled || c.tree != f.tree {
		return false
	}
	if c == f.focused {
		return true
	}
	f.change(c)
	return f.focused == c
}

// ClearFocus removes keyboard focus, raising LostKeyboardFocus on the old
// owner.
func (f *FocusManager) ClearFocus() {
	if f.focused != nil {
		f.change(nil)
	}
}

func (f *FocusManager) change(next *Control) {
	old := f.focused
	if old != nil {
		old.focused = false
		f.focused = nil
		old.RaiseEvent(&FocusChangedEventArgs{
			RoutedEventArgs: RoutedEventArgs{RoutedEvent: LostKeyboardFocusEvent},
			OldFocus:        old,
			NewFocus:        next,
		})
		old.InvalidateVisual()
	}
	if next == nil {
		return
	}
	// A lost-focus handler may have detached next or focused something else.
	if next.tree != f.tree || f.focused != nil {
		return
	}
	f.focused = next
	next.focused = true
	next.RaiseEvent(&FocusChangedEventArgs{
		RoutedEventArgs: RoutedEventArgs{RoutedEvent: GotKeyboardFocusEvent},
		OldFocus:        old,
		NewFocus:        next,
	})
	next.InvalidateVisual()
	f.tree.logger.Debug("focus changed", slog.String("to", next.String()))
}

// subtreeDetached clears focus when it was inside the detached subtree.
// The lost-focus event routes within the detached subtree only, since its
// root no longer has a parent.
func (f *FocusManager) subtreeDetached(root *Control) {
	focused := f.focused
	if focused == nil || (focused != root && !root.IsAncestorOf(focused)) {
		return
	}
	focused.focused = false
	f.focused = nil
	focused.RaiseEvent(&FocusChangedEventArgs{
		RoutedEventArgs: RoutedEventArgs{RoutedEvent: LostKeyboardFocusEvent},
		OldFocus:        focused,
	})
	f.tree.scheduleRender()
}

// MoveNext focuses the next (or previous, when reverse) focusable visible
// control in depth-first order, wrapping around. It reports whether focus
// moved.
func (f *FocusManager) MoveNext(reverse bool) bool {
	root := f.tree.root
	if root == nil {
		return false
	}
	var order []*Control
	collectTabStops(root, &order)
	if len(order) == 0 {
		return false
	}

	idx := -1
	for i, c := range order {
		if c == f.focused {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && reverse:
		next = len(order) - 1
	case idx < 0:
		next = 0
	case reverse:
		next = (idx - 1 + len(order)) % len(order)
	default:
		next = (idx + 1) % len(order)
	}
	if order[next] == f.focused {
		return false
	}
	return f.SetFocus(order[next])
}

func collectTabStops(c *Control, out *[]*Control) {
	if !c.visible {
		return
	}
	if c.focusable && !c.disabled {
		*out = append(*out, c)
	}
	for _, ch := range c.children {
		collectTabStops(ch, out)
	}
}
