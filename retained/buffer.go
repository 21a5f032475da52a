package retained

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/conui/tw"
)

// Color is one of the 16 console colors.
type Color = tw.Color

// Attr packs a foreground color into the low nibble and a background color
// into the high nibble, the same way a console character attribute does.
type Attr uint8

// DefaultAttr is light gray on black.
var DefaultAttr = MakeAttr(tw.Gray, tw.Black)

// MakeAttr combines a foreground and a background color.
func MakeAttr(fg, bg Color) Attr {
	return Attr(uint8(fg)&0x0F | (uint8(bg)&0x0F)<<4)
}

// Foreground returns the foreground color.
func (a Attr) Foreground() Color { return Color(uint8(a) & 0x0F) }

// Background returns the background color.
func (a Attr) Background() Color { return Color(uint8(a) >> 4) }

// Cell is one character position of a buffer.
// A Char of 0 marks the trailing half of a double-width rune.
type Cell struct {
	Char rune
	Attr Attr
}

// Buffer is a 2-D grid of cells a control renders into.
// Every drawing primitive clips to the buffer bounds; out-of-range writes
// are dropped rather than reported.
type Buffer struct {
	width, height int
	cells         []Cell
	attr          Attr
}

// NewBuffer creates a buffer filled with spaces in attr.
func NewBuffer(width, height int, attr Attr) *Buffer {
	size := Size{width, height}.clamp()
	b := &Buffer{
		width:  size.Width,
		height: size.Height,
		cells:  make([]Cell, size.Width*size.Height),
		attr:   attr,
	}
	b.Clear()
	return b
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Size returns the buffer extent.
func (b *Buffer) Size() Size { return Size{b.width, b.height} }

// Bounds returns the buffer extent as a rect at the origin.
func (b *Buffer) Bounds() Rect { return Rect{Width: b.width, Height: b.height} }

// DefaultAttr returns the attribute blank cells are initialized with.
func (b *Buffer) DefaultAttr() Attr { return b.attr }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Cell returns the cell at (x, y). ok is false outside the buffer.
func (b *Buffer) Cell(x, y int) (c Cell, ok bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Clear resets every cell to a space in the default attribute.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Char: ' ', Attr: b.attr}
	}
}

// SetPixel writes a character keeping the cell's current attribute.
func (b *Buffer) SetPixel(x, y int, ch rune) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Char = ch
}

// SetPixelAttr writes a character and its attribute.
func (b *Buffer) SetPixelAttr(x, y int, ch rune, attr Attr) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Char: ch, Attr: attr}
}

// SetAttr changes the attribute of a cell without touching its character.
func (b *Buffer) SetAttr(x, y int, attr Attr) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x].Attr = attr
}

// FillRectangle writes ch/attr to every cell of the rect, clipped to the buffer.
func (b *Buffer) FillRectangle(x, y, w, h int, ch rune, attr Attr) {
	r := Rect{X: x, Y: y, Width: w, Height: h}.Intersect(b.Bounds())
	for row := r.Y; row < r.Y+r.Height; row++ {
		base := row * b.width
		for col := r.X; col < r.X+r.Width; col++ {
			b.cells[base+col] = Cell{Char: ch, Attr: attr}
		}
	}
}

// DrawString writes s starting at (x, y) and returns the number of columns
// consumed. Zero-width runes are skipped; double-width runes take two cells.
func (b *Buffer) DrawString(x, y int, s string, attr Attr) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetPixelAttr(col, y, r, attr)
		if w == 2 {
			b.SetPixelAttr(col+1, y, 0, attr)
		}
		col += w
	}
	return col - x
}

// Compose copies child into b with child's origin at (offsetX, offsetY).
// Only cells inside child's bounds, clip (in b's space) and b's bounds are
// written; everything else in b is left untouched.
func (b *Buffer) Compose(child *Buffer, offsetX, offsetY int, clip Rect) {
	if child == nil {
		return
	}
	area := child.Bounds().Offset(Point{offsetX, offsetY}).
		Intersect(clip).
		Intersect(b.Bounds())
	if area.IsEmpty() {
		return
	}
	for row := area.Y; row < area.Y+area.Height; row++ {
		src := (row-offsetY)*child.width + (area.X - offsetX)
		dst := row*b.width + area.X
		copy(b.cells[dst:dst+area.Width], child.cells[src:src+area.Width])
	}
}

// Row returns the characters of row y as a string, continuation cells omitted.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if c.Char != 0 {
			sb.WriteRune(c.Char)
		}
	}
	return sb.String()
}

// String renders the buffer as newline-separated rows.
func (b *Buffer) String() string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return strings.Join(rows, "\n")
}
