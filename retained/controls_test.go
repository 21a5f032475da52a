package retained

import (
	"testing"

	"github.com/agiangrant/conui/tw"
)

func TestButtonClick(t *testing.T) {
	tree := NewTree(DefaultTreeConfig())
	tree.Resize(Size{20, 2})
	clicks := 0
	ok := ActionButton("ok", func() { clicks++ })
	cancel := NewButton("cancel")
	if err := tree.SetRoot(VStack("", ok, cancel)); err != nil {
		t.Fatal(err)
	}

	tree.Dispatch(MouseInput{Position: Point{2, 0}, Left: Pressed, Kind: MouseKindDown})
	if clicks != 1 {
		t.Errorf("clicks after mouse down = %d, want 1", clicks)
	}
	if !ok.IsFocused() {
		t.Error("clicking did not focus the button")
	}
	if !ok.IsPressed() {
		t.Error("button not pressed while mouse is down")
	}
	tree.Dispatch(MouseInput{Position: Point{2, 0}, Kind: MouseKindUp})
	if ok.IsPressed() {
		t.Error("button still pressed after mouse up")
	}

	tree.Dispatch(KeyInput{Key: KeyEnter, Down: true})
	tree.Dispatch(KeyInput{Key: KeyRune, Char: ' ', Down: true})
	if clicks != 3 {
		t.Errorf("clicks after Enter and Space = %d, want 3", clicks)
	}

	// Right button does not click
	tree.Dispatch(MouseInput{Position: Point{2, 0}, Right: Pressed, Kind: MouseKindDown})
	if clicks != 3 {
		t.Errorf("right click activated the button")
	}
}

func TestButtonClickBubbles(t *testing.T) {
	b := NewButton("go")
	root := Overlay("", b)
	var source *Control
	root.AddHandler(ClickEvent, func(_ *Control, args EventArgs) {
		source = args.RoutedArgs().Source
	})
	b.RaiseEvent(&RoutedEventArgs{RoutedEvent: ClickEvent})
	if source != &b.Control {
		t.Errorf("click source = %v, want button", source)
	}
}

func TestButtonDisabled(t *testing.T) {
	tree := NewTree(DefaultTreeConfig())
	tree.Resize(Size{20, 1})
	clicks := 0
	b := ActionButton("ok", func() { clicks++ })
	b.SetEnabled(false)
	if err := tree.SetRoot(b); err != nil {
		t.Fatal(err)
	}
	tree.Dispatch(MouseInput{Position: Point{1, 0}, Left: Pressed, Kind: MouseKindDown})
	if clicks != 0 {
		t.Error("disabled button clicked")
	}
	if b.IsFocused() {
		t.Error("disabled button took focus")
	}
}

func TestButtonRender(t *testing.T) {
	tree := NewTree(DefaultTreeConfig())
	tree.Resize(Size{10, 1})
	b := NewButton("ok")
	if err := tree.SetRoot(HStack("", b)); err != nil {
		t.Fatal(err)
	}
	frame := tree.Render()
	if got := frame.Row(0); got != "[ ok ]    " {
		t.Errorf("row = %q", got)
	}
	c, _ := frame.Cell(0, 0)
	if c.Attr != MakeAttr(tw.Black, tw.Cyan) {
		t.Errorf("unfocused attr = %v/%v, want black on cyan", c.Attr.Foreground(), c.Attr.Background())
	}

	b.Focus()
	c, _ = tree.Render().Cell(0, 0)
	if c.Attr.Background() != tw.White {
		t.Errorf("focused background = %v, want white", c.Attr.Background())
	}
}

func TestCheckBox(t *testing.T) {
	tree := NewTree(DefaultTreeConfig())
	tree.Resize(Size{20, 1})
	cb := NewCheckBox("wrap")
	changes := 0
	cb.OnCheckedChanged(func(*Control, EventArgs) { changes++ })
	if err := tree.SetRoot(cb); err != nil {
		t.Fatal(err)
	}

	if got := tree.Render().Row(0)[:8]; got != "[ ] wrap" {
		t.Errorf("row = %q", got)
	}
	tree.Dispatch(MouseInput{Position: Point{0, 0}, Left: Pressed, Kind: MouseKindDown})
	if !cb.Checked() {
		t.Fatal("click did not check")
	}
	if got := tree.Render().Row(0)[:8]; got != "[x] wrap" {
		t.Errorf("row = %q", got)
	}
	tree.Dispatch(KeyInput{Key: KeyRune, Char: ' ', Down: true})
	if cb.Checked() {
		t.Error("Space did not uncheck")
	}
	cb.SetChecked(false)
	if changes != 2 {
		t.Errorf("changes = %d, want 2", changes)
	}
}

func TestTextBlockMeasuresDisplayWidth(t *testing.T) {
	tests := []struct {
		text string
		want Size
	}{
		{"", Size{0, 1}},
		{"hello", Size{5, 1}},
		{"日本", Size{4, 1}},
	}
	for _, tt := range tests {
		if got := NewTextBlock(tt.text).Measure(Size{Unbounded, Unbounded}); got != tt.want {
			t.Errorf("Measure(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStyleCache(t *testing.T) {
	ClearStyleCache()
	Label("a", "text-red bg-blue")
	Label("b", "text-red bg-blue")
	Label("c", "text-white")
	if got := StyleCacheSize(); got != 2 {
		t.Errorf("StyleCacheSize() = %d, want 2", got)
	}
}
