package retained

import (
	"testing"
)

type textBoxFixture struct {
	tree  *Tree
	box   *TextBox
	beeps int
}

func newTextBoxFixture(t *testing.T, size int) *textBoxFixture {
	t.Helper()
	f := &textBoxFixture{box: NewTextBox(size)}
	f.tree = NewTree(DefaultTreeConfig())
	f.tree.Resize(Size{20, 2})
	f.tree.SetBeeper(func() { f.beeps++ })
	if err := f.tree.SetRoot(VStack("", f.box)); err != nil {
		t.Fatal(err)
	}
	f.tree.UpdateLayout()
	if !f.box.Focus() {
		t.Fatal("text box not focusable")
	}
	return f
}

func (f *textBoxFixture) typeText(s string) {
	for _, r := range s {
		f.tree.Dispatch(KeyInput{Key: KeyRune, Char: r, Down: true})
	}
}

func (f *textBoxFixture) press(k Key) {
	f.tree.Dispatch(KeyInput{Key: k, Down: true})
}

// visible returns the text box's columns of the first frame row.
func (f *textBoxFixture) visible() string {
	row := []rune(f.tree.Render().Row(0))
	return string(row[:f.box.Size()+2])
}

func (f *textBoxFixture) expect(t *testing.T, cursor, offset int, visible string) {
	t.Helper()
	if got := f.box.CursorColumn(); got != cursor {
		t.Errorf("cursor = %d, want %d", got, cursor)
	}
	if got := f.box.CursorPosition(); got != (Point{cursor + 1, 0}) {
		t.Errorf("cursor position = %v, want {%d 0}", got, cursor+1)
	}
	if got := f.box.DisplayOffset(); got != offset {
		t.Errorf("display offset = %d, want %d", got, offset)
	}
	if got := f.visible(); got != visible {
		t.Errorf("visible = %q, want %q", got, visible)
	}
}

func TestTextBoxTypingScrolls(t *testing.T) {
	f := newTextBoxFixture(t, 5)

	f.typeText("hello")
	f.expect(t, 5, 0, " hello ")

	f.typeText(" ")
	f.expect(t, 5, 1, "<ello  ")

	f.typeText("world")
	f.expect(t, 5, 6, "<world ")
	if got := f.box.Text(); got != "hello world" {
		t.Errorf("text = %q", got)
	}
	if f.beeps != 0 {
		t.Errorf("beeps = %d, want 0", f.beeps)
	}
	if p, ok := f.tree.Cursor(); !ok || p != (Point{6, 0}) {
		t.Errorf("screen cursor = %v, %v; want {6 0}", p, ok)
	}
}

func TestTextBoxNavigation(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	f.typeText("hello world")

	f.press(KeyHome)
	f.expect(t, 0, 0, " hello>")

	f.press(KeyHome)
	if f.beeps != 1 {
		t.Errorf("Home at start: beeps = %d, want 1", f.beeps)
	}

	f.press(KeyLeft)
	if f.beeps != 2 {
		t.Errorf("Left at start: beeps = %d, want 2", f.beeps)
	}

	for i := 0; i < 6; i++ {
		f.press(KeyRight)
	}
	f.expect(t, 5, 1, "<ello >")

	f.press(KeyEnd)
	f.expect(t, 5, 6, "<world ")

	f.press(KeyRight)
	if f.beeps != 3 {
		t.Errorf("Right at end: beeps = %d, want 3", f.beeps)
	}

	f.press(KeyLeft)
	f.expect(t, 4, 6, "<world ")
}

func TestTextBoxEditing(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	f.typeText("abc")

	f.press(KeyBackspace)
	if got := f.box.Text(); got != "ab" {
		t.Errorf("after Backspace text = %q, want ab", got)
	}
	f.expect(t, 2, 0, " ab    ")

	f.press(KeyHome)
	f.press(KeyDelete)
	if got := f.box.Text(); got != "b" {
		t.Errorf("after Delete text = %q, want b", got)
	}

	f.press(KeyBackspace)
	if f.beeps != 1 {
		t.Errorf("Backspace at start: beeps = %d, want 1", f.beeps)
	}
	f.press(KeyEnd)
	f.press(KeyDelete)
	if f.beeps != 2 {
		t.Errorf("Delete at end: beeps = %d, want 2", f.beeps)
	}

	f.press(KeyHome)
	f.typeText("X")
	if got := f.box.Text(); got != "Xb" {
		t.Errorf("insert at start text = %q, want Xb", got)
	}
}

func TestTextBoxBackspaceWhileScrolled(t *testing.T) {
	f := newTextBoxFixture(t, 3)
	f.typeText("abcde")
	f.expect(t, 3, 2, "<cde ")

	f.press(KeyBackspace)
	if got := f.box.Text(); got != "abcd" {
		t.Errorf("text = %q, want abcd", got)
	}
	f.expect(t, 3, 1, "<bcd ")
}

func TestTextBoxMaxLength(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	f.box.SetMaxLength(3)
	f.typeText("abcd")
	if got := f.box.Text(); got != "abc" {
		t.Errorf("text = %q, want abc", got)
	}
	if f.beeps != 1 {
		t.Errorf("beeps = %d, want 1", f.beeps)
	}
}

func TestTextBoxIgnoresModifiedKeys(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	f.tree.Dispatch(KeyInput{Key: KeyRune, Char: 'c', Modifiers: ModCtrl, Down: true})
	f.tree.Dispatch(KeyInput{Key: KeyRune, Char: 'x', Down: false})
	if got := f.box.Text(); got != "" {
		t.Errorf("text = %q, want empty", got)
	}
}

func TestTextBoxCharFilter(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	f.box.SetCharFilter(func(r rune) bool { return r >= '0' && r <= '9' })
	f.typeText("1a2")
	if got := f.box.Text(); got != "12" {
		t.Errorf("text = %q, want 12", got)
	}
	if f.beeps != 1 {
		t.Errorf("beeps = %d, want 1", f.beeps)
	}
}

func TestTextBoxMousePlacesCursor(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	f.typeText("abc")

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"inside text", 2, 1},
		{"past text end", 5, 3},
		{"left indicator", 0, 3},
		{"first column", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.tree.Dispatch(MouseInput{Position: Point{tt.x, 0}, Left: Pressed, Kind: MouseKindDown})
			f.tree.Dispatch(MouseInput{Position: Point{tt.x, 0}, Kind: MouseKindUp})
			if got := f.box.CursorColumn(); got != tt.want {
				t.Errorf("cursor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTextBoxTextChanged(t *testing.T) {
	f := newTextBoxFixture(t, 5)
	changes := 0
	f.box.OnTextChanged(func(*Control, EventArgs) { changes++ })
	f.typeText("ab")
	f.press(KeyLeft)
	f.press(KeyBackspace)
	if changes != 3 {
		t.Errorf("changes = %d, want 3", changes)
	}
}

func TestTextBoxFixedSize(t *testing.T) {
	box := NewTextBox(8)
	for _, avail := range []Size{{2, 1}, {100, 100}, {Unbounded, Unbounded}} {
		if got := box.Measure(avail); got != (Size{10, 1}) {
			t.Errorf("Measure(%v) = %v, want 10x1", avail, got)
		}
	}
	if got := box.Arrange(Rect{0, 0, 3, 3}); got != (Rect{0, 0, 10, 1}) {
		t.Errorf("Arrange() = %v, want 10x1", got)
	}
}
