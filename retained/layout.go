package retained

// Orientation is the stacking direction of a Panel.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Panel stacks its children along one axis. Each child is measured with the
// stacking axis unbounded and gets a slot of its desired extent on that axis
// and the panel's full extent on the other. Slots never overlap and are
// clamped to the panel's final size, so children that do not fit get a
// truncated or empty slot.
type Panel struct {
	Control
	orientation Orientation
}

// NewPanel creates an empty panel.
func NewPanel(orientation Orientation) *Panel {
	p := &Panel{orientation: orientation}
	p.Init(p)
	return p
}

// Orientation returns the stacking direction.
func (p *Panel) Orientation() Orientation { return p.orientation }

// SetOrientation changes the stacking direction.
func (p *Panel) SetOrientation(o Orientation) *Panel {
	if p.orientation != o {
		p.orientation = o
		p.Invalidate()
	}
	return p
}

// MeasureOverride sums child extents along the stacking axis and takes the
// largest extent across it, limited to available.
func (p *Panel) MeasureOverride(available Size) Size {
	var along, across int
	for _, ch := range p.children {
		if p.orientation == Vertical {
			d := ch.Measure(Size{available.Width, Unbounded})
			along = addSaturating(along, d.Height)
			across = max(across, d.Width)
		} else {
			d := ch.Measure(Size{Unbounded, available.Height})
			along = addSaturating(along, d.Width)
			across = max(across, d.Height)
		}
	}
	if p.orientation == Vertical {
		return Size{min(across, available.Width), min(along, available.Height)}
	}
	return Size{min(along, available.Width), min(across, available.Height)}
}

// ArrangeOverride hands out consecutive slots along the stacking axis.
func (p *Panel) ArrangeOverride(final Size) Size {
	offset := 0
	for _, ch := range p.children {
		if p.orientation == Vertical {
			h := max(0, min(ch.desired.Height, final.Height-offset))
			ch.Arrange(Rect{X: 0, Y: offset, Width: final.Width, Height: h})
			offset += h
		} else {
			w := max(0, min(ch.desired.Width, final.Width-offset))
			ch.Arrange(Rect{X: offset, Y: 0, Width: w, Height: final.Height})
			offset += w
		}
	}
	return final
}

func addSaturating(a, b int) int {
	if a > Unbounded-b {
		return Unbounded
	}
	return a + b
}
