package retained

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// TreeConfig configures a tree's input handling.
type TreeConfig struct {
	// Logger receives debug records for undelivered input and focus changes.
	// Default: discards everything
	Logger *slog.Logger

	// DoubleClickTime is the maximum interval between presses counted as
	// one multi-click.
	// Default: 500ms
	DoubleClickTime time.Duration

	// TabNavigation moves focus on unhandled Tab / Shift+Tab.
	// Default: true
	TabNavigation bool

	// Clock supplies timestamps for click counting.
	// Default: time.Now
	Clock func() time.Time
}

// DefaultTreeConfig returns sensible defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		DoubleClickTime: 500 * time.Millisecond,
		TabNavigation:   true,
	}
}

// Tree owns the root control, the screen size, keyboard focus and the event
// router. Layout and repaint requests are batched: invalidation only sets
// flags, and UpdateLayout / Render do the work once per frame.
type Tree struct {
	root   *Control
	size   Size
	focus  *FocusManager
	router *EventRouter
	logger *slog.Logger

	layoutDirty bool
	renderDirty bool

	// Frame tracking
	layoutPasses uint64
	frameNumber  uint64
	frame        *Buffer

	beeper func()
	quit   bool
}

// NewTree creates an empty tree.
func NewTree(config TreeConfig) *Tree {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.DoubleClickTime <= 0 {
		config.DoubleClickTime = DefaultTreeConfig().DoubleClickTime
	}
	t := &Tree{
		logger:      config.Logger,
		layoutDirty: true,
		renderDirty: true,
	}
	t.focus = &FocusManager{tree: t}
	t.router = newEventRouter(t, config)
	return t
}

// SetRoot installs el as the root control. Any previous root is detached
// from the tree, clearing focus if it held it.
func (t *Tree) SetRoot(el Element) error {
	if el == nil {
		return ErrNilControl
	}
	c := el.Base()
	if c == t.root {
		return nil
	}
	if c.parent != nil || c.tree != nil {
		return fmt.Errorf("set root %v: %w", c, ErrAlreadyAttached)
	}
	if old := t.root; old != nil {
		t.root = nil
		setTree(old, nil)
		t.focus.subtreeDetached(old)
	}
	t.root = c
	setTree(c, t)
	c.Invalidate()
	return nil
}

// Root returns the root control.
func (t *Tree) Root() *Control { return t.root }

// Focus returns the focus manager.
func (t *Tree) Focus() *FocusManager { return t.focus }

// Router returns the event router.
func (t *Tree) Router() *EventRouter { return t.router }

// Logger returns the tree's logger.
func (t *Tree) Logger() *slog.Logger { return t.logger }

// Dispatch routes one raw input record.
func (t *Tree) Dispatch(in Input) DispatchResult {
	return t.router.Dispatch(in)
}

// Size returns the screen size the root is laid out against.
func (t *Tree) Size() Size { return t.size }

// Resize changes the screen size and schedules a full layout.
func (t *Tree) Resize(size Size) {
	size = size.clamp()
	if size == t.size {
		return
	}
	t.size = size
	if t.root != nil {
		t.root.Invalidate()
	}
	t.scheduleLayout()
}

func (t *Tree) scheduleLayout() {
	t.layoutDirty = true
	t.renderDirty = true
}

func (t *Tree) scheduleRender() {
	t.renderDirty = true
}

// NeedsLayout reports whether a layout pass is pending.
func (t *Tree) NeedsLayout() bool { return t.layoutDirty }

// NeedsRender reports whether the screen content may have changed since the
// last Render.
func (t *Tree) NeedsRender() bool { return t.renderDirty || t.layoutDirty }

// LayoutPasses returns how many layout passes have run.
func (t *Tree) LayoutPasses() uint64 { return t.layoutPasses }

// FrameNumber returns how many frames have been rendered.
func (t *Tree) FrameNumber() uint64 { return t.frameNumber }

// UpdateLayout runs one measure/arrange pass over the tree if any control
// was invalidated. The root is measured against the screen size and
// arranged to fill it. It reports whether a pass ran.
func (t *Tree) UpdateLayout() bool {
	if !t.layoutDirty {
		return false
	}
	t.layoutDirty = false
	if t.root == nil {
		return false
	}
	t.root.Measure(t.size)
	t.root.Arrange(NewRect(Point{}, t.size))
	t.layoutPasses++
	return true
}

// Render lays out the tree if needed and composes a full frame. The
// returned buffer is owned by the tree and reused by the next Render.
func (t *Tree) Render() *Buffer {
	t.UpdateLayout()
	if t.frame == nil || t.frame.Size() != t.size {
		t.frame = NewBuffer(t.size.Width, t.size.Height, DefaultAttr)
	} else {
		t.frame.Clear()
	}
	if root := t.root; root != nil && root.visible {
		rb := renderControl(root)
		t.frame.Compose(rb, root.actual.X, root.actual.Y, root.slot)
		releaseBuffer(rb)
	}
	t.renderDirty = false
	t.frameNumber++
	return t.frame
}

// renderControl renders c and its visible descendants into a pooled buffer
// of c's actual size. Each child is composed at its offset, clipped to its
// layout slot. Caller must release the result.
func renderControl(c *Control) *Buffer {
	buf := acquireBuffer(c.actual.Width, c.actual.Height, c.attr)
	c.self.Render(buf)
	for _, child := range c.children {
		if !child.visible || child.actual.IsEmpty() {
			continue
		}
		cb := renderControl(child)
		buf.Compose(cb, child.actual.X, child.actual.Y, child.slot)
		releaseBuffer(cb)
	}
	return buf
}

// Cursor returns the screen position of the focused control's cursor. ok is
// false when nothing focused shows a cursor or it lies outside the region
// the control is actually drawn in.
func (t *Tree) Cursor() (p Point, ok bool) {
	f := t.focus.focused
	if f == nil || !f.cursorVisible || !isShown(f) {
		return Point{}, false
	}
	p = TranslatePoint(f, f.cursorPos, nil)
	if !visibleRegion(f, NewRect(Point{}, t.size)).Contains(p) {
		return Point{}, false
	}
	return p, true
}

// visibleRegion narrows screen to the part of c that survives clipping by
// its own slot and every ancestor's, in screen space.
func visibleRegion(c *Control, screen Rect) Rect {
	r := screen
	for cur := c; cur != nil; cur = cur.parent {
		r = r.Intersect(cur.actual.Intersect(cur.slot).Offset(screenOffset(cur.parent)))
	}
	return r
}

// isShown reports whether c and all its ancestors are visible.
func isShown(c *Control) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if !cur.visible {
			return false
		}
	}
	return true
}

// SetBeeper installs the function controls call to sound the bell.
func (t *Tree) SetBeeper(beep func()) { t.beeper = beep }

// Beep sounds the bell if a beeper is installed.
func (t *Tree) Beep() {
	if t.beeper != nil {
		t.beeper()
	}
}

// Quit asks the loop driving the tree to stop after the current input.
func (t *Tree) Quit() { t.quit = true }

// QuitRequested reports whether Quit was called.
func (t *Tree) QuitRequested() bool { return t.quit }

// FindByName returns the first control in depth-first order with the given
// name.
func (t *Tree) FindByName(name string) *Control {
	if t.root == nil {
		return nil
	}
	return findByName(t.root, name)
}

func findByName(c *Control, name string) *Control {
	if c.name == name {
		return c
	}
	for _, ch := range c.children {
		if found := findByName(ch, name); found != nil {
			return found
		}
	}
	return nil
}
