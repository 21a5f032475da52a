package retained

import "math"

// Unbounded is the available-size value meaning "no constraint on this axis".
const Unbounded = math.MaxInt32

// Point is a character-cell coordinate in some control's local space.
type Point struct {
	X, Y int
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a non-negative extent in cells.
type Size struct {
	Width, Height int
}

// IsEmpty reports whether the size covers no cells.
func (s Size) IsEmpty() bool { return s.Width <= 0 || s.Height <= 0 }

// clamp returns s with negative dimensions raised to zero.
func (s Size) clamp() Size {
	if s.Width < 0 {
		s.Width = 0
	}
	if s.Height < 0 {
		s.Height = 0
	}
	return s
}

// Rect is a control's bounds in its parent's coordinate space.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect builds a rect from an origin and a size.
func NewRect(origin Point, size Size) Rect {
	size = size.clamp()
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Size returns the rect's extent.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains checks if a point is within the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// Right is the exclusive right edge, clamped to math.MaxInt.
func (r Rect) Right() int { return edge(r.X, r.Width) }

// Bottom is the exclusive bottom edge, clamped to math.MaxInt.
func (r Rect) Bottom() int { return edge(r.Y, r.Height) }

// edge adds an extent to a coordinate, saturating instead of wrapping.
func edge(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// Offset returns r moved by d.
func (r Rect) Offset(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Intersect returns the overlap of r and o, or an empty rect at r's origin.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ============================================================================
// Coordinate Translation
// ============================================================================

// screenOffset accumulates arranged offsets from c up to the topmost ancestor.
// A nil control is screen space itself.
func screenOffset(c *Control) Point {
	var p Point
	for cur := c; cur != nil; cur = cur.parent {
		p = p.Add(cur.actual.Origin())
	}
	return p
}

// TranslatePoint converts p from from's local space into to's local space.
// A nil from or to stands for absolute screen space.
//
// Both controls are projected onto their shared root, so the result is only
// meaningful when they belong to the same tree.
func TranslatePoint(from *Control, p Point, to *Control) Point {
	return p.Add(screenOffset(from)).Sub(screenOffset(to))
}

// ScreenRect returns the control's arranged rect in screen space.
func (c *Control) ScreenRect() Rect {
	return NewRect(screenOffset(c), c.actual.Size())
}
