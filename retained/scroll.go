package retained

// ============================================================================
// Scroll Viewer
// ============================================================================

// ScrollViewer shows a vertical window onto a taller content control. The
// wheel and PgUp/PgDn scroll it, and focusing a descendant scrolls that
// descendant into view.
type ScrollViewer struct {
	Control
	scrollY int
}

// NewScrollViewer wraps content in a scroll viewer. content may be nil and
// attached later.
func NewScrollViewer(content Element) *ScrollViewer {
	s := &ScrollViewer{}
	s.Init(s)
	if content != nil {
		attachAll(&s.Control, []Element{content})
	}

	s.OnMouseWheel(func(_ *Control, e *MouseWheelEventArgs) {
		if s.ScrollBy(-e.Delta) {
			e.Handled = true
		}
	})
	s.OnKeyDown(func(_ *Control, e *KeyEventArgs) {
		page := max(1, s.actual.Height-1)
		switch e.Key {
		case KeyPgUp:
			e.Handled = s.ScrollBy(-page)
		case KeyPgDn:
			e.Handled = s.ScrollBy(page)
		}
	})
	s.OnGotFocus(func(_ *Control, e *FocusChangedEventArgs) {
		if e.NewFocus != nil && s.IsAncestorOf(e.NewFocus) {
			s.ScrollIntoView(e.NewFocus)
		}
	})
	return s
}

// ScrollY returns the number of content rows scrolled off the top.
func (s *ScrollViewer) ScrollY() int { return s.scrollY }

// maxScroll is how far the content can scroll given the last layout.
func (s *ScrollViewer) maxScroll() int {
	var content int
	for _, ch := range s.children {
		content = max(content, ch.desired.Height)
	}
	return max(0, content-s.actual.Height)
}

// ScrollToY scrolls to row y, clamped to the content. It reports whether
// the position changed.
func (s *ScrollViewer) ScrollToY(y int) bool {
	y = max(0, min(y, s.maxScroll()))
	if y == s.scrollY {
		return false
	}
	s.scrollY = y
	s.Invalidate()
	return true
}

// ScrollBy scrolls by delta rows.
func (s *ScrollViewer) ScrollBy(delta int) bool {
	return s.ScrollToY(s.scrollY + delta)
}

// ScrollIntoView scrolls the minimum amount that brings c's rows into the
// viewport.
func (s *ScrollViewer) ScrollIntoView(c *Control) bool {
	if c == nil || !s.IsAncestorOf(c) {
		return false
	}
	if s.tree != nil {
		s.tree.UpdateLayout()
	}
	// Position relative to the unscrolled content
	top := TranslatePoint(c, Point{}, &s.Control).Y + s.scrollY
	bottom := top + c.actual.Height
	switch {
	case top < s.scrollY:
		return s.ScrollToY(top)
	case bottom > s.scrollY+s.actual.Height:
		return s.ScrollToY(bottom - s.actual.Height)
	}
	return false
}

// MeasureOverride measures content with unbounded height and wants at most
// the available height.
func (s *ScrollViewer) MeasureOverride(available Size) Size {
	var desired Size
	for _, ch := range s.children {
		d := ch.Measure(Size{available.Width, Unbounded})
		desired.Width = max(desired.Width, d.Width)
		desired.Height = max(desired.Height, d.Height)
	}
	return Size{min(desired.Width, available.Width), min(desired.Height, available.Height)}
}

// ArrangeOverride places content at its full height, shifted up by the
// scroll position. The viewer's buffer clips what falls outside.
func (s *ScrollViewer) ArrangeOverride(final Size) Size {
	s.actual.Height = final.Height
	s.scrollY = max(0, min(s.scrollY, s.maxScroll()))
	for _, ch := range s.children {
		ch.Arrange(Rect{X: 0, Y: -s.scrollY, Width: final.Width, Height: ch.desired.Height})
	}
	return final
}
