package console

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/agiangrant/conui/retained"
	"github.com/agiangrant/conui/tw"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewWithScreen(sim, DefaultOptions())
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(func() { s.Close() })
	return s, sim
}

// next reads input records until one that is not a resize arrives.
func next(t *testing.T, s *Screen) retained.Input {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		in, err := s.ReadInput(ctx)
		if err != nil {
			t.Fatalf("ReadInput: %v", err)
		}
		if _, ok := in.(retained.ResizeInput); ok {
			continue
		}
		return in
	}
}

func TestPresent(t *testing.T) {
	s, sim := newSimScreen(t, 6, 2)

	frame := retained.NewBuffer(6, 2, retained.DefaultAttr)
	frame.DrawString(0, 0, "hi世", retained.MakeAttr(tw.Yellow, tw.DarkBlue))
	if err := s.Present(frame, retained.Point{X: 2, Y: 1}, true); err != nil {
		t.Fatalf("Present: %v", err)
	}

	cells, w, _ := sim.GetContents()
	if got := cells[0].Runes[0]; got != 'h' {
		t.Errorf("cell 0 = %q, want 'h'", got)
	}
	if got := cells[2].Runes[0]; got != '世' {
		t.Errorf("cell 2 = %q, want '世'", got)
	}
	fg, bg, _ := cells[1].Style.Decompose()
	if fg != tcell.ColorYellow || bg != tcell.ColorNavy {
		t.Errorf("cell 1 colors = %v/%v, want yellow/navy", fg, bg)
	}
	if got := cells[w+5].Runes[0]; got != ' ' {
		t.Errorf("last cell = %q, want blank", got)
	}

	x, y, visible := sim.GetCursor()
	if !visible || x != 2 || y != 1 {
		t.Errorf("cursor = %d,%d visible=%v, want 2,1 visible", x, y, visible)
	}

	if err := s.Present(frame, retained.Point{}, false); err != nil {
		t.Fatal(err)
	}
	if _, _, visible := sim.GetCursor(); visible {
		t.Error("cursor still visible")
	}
}

func TestReadKey(t *testing.T) {
	s, sim := newSimScreen(t, 10, 2)

	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mod  tcell.ModMask
		want retained.KeyInput
	}{
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, retained.KeyInput{Key: retained.KeyRune, Char: 'a', Down: true}},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, retained.KeyInput{Key: retained.KeyEnter, Down: true}},
		{"shift tab", tcell.KeyBacktab, 0, tcell.ModShift, retained.KeyInput{Key: retained.KeyBacktab, Modifiers: retained.ModShift, Down: true}},
		{"ctrl letter", tcell.KeyCtrlQ, 0, tcell.ModCtrl, retained.KeyInput{Key: retained.KeyRune, Char: 'q', Modifiers: retained.ModCtrl, Down: true}},
		{"function key", tcell.KeyF10, 0, tcell.ModNone, retained.KeyInput{Key: retained.KeyF10, Down: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim.InjectKey(tt.key, tt.r, tt.mod)
			got, ok := next(t, s).(retained.KeyInput)
			if !ok {
				t.Fatalf("record is not a key")
			}
			if got != tt.want {
				t.Errorf("key = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadMouse(t *testing.T) {
	s, sim := newSimScreen(t, 10, 5)

	sim.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	down := next(t, s).(retained.MouseInput)
	if down.Kind != retained.MouseKindDown || down.Left != retained.Pressed {
		t.Errorf("down = %+v", down)
	}
	if down.Position != (retained.Point{X: 3, Y: 2}) {
		t.Errorf("position = %v", down.Position)
	}

	sim.InjectMouse(4, 2, tcell.Button1, tcell.ModNone)
	if drag := next(t, s).(retained.MouseInput); drag.Kind != retained.MouseKindMove {
		t.Errorf("drag kind = %v, want move", drag.Kind)
	}

	sim.InjectMouse(4, 2, tcell.ButtonNone, tcell.ModNone)
	up := next(t, s).(retained.MouseInput)
	if up.Kind != retained.MouseKindUp || up.Left != retained.Released {
		t.Errorf("up = %+v", up)
	}

	sim.InjectMouse(4, 2, tcell.WheelUp, tcell.ModNone)
	if wheel := next(t, s).(retained.MouseInput); wheel.Kind != retained.MouseKindWheel || wheel.WheelDelta != 1 {
		t.Errorf("wheel = %+v", wheel)
	}
}

func TestReadInputCancelled(t *testing.T) {
	s, _ := newSimScreen(t, 10, 2)
	// Drain anything queued by initialization.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	for {
		if _, err := s.ReadInput(ctx); err != nil {
			if ctx.Err() == nil {
				t.Fatalf("ReadInput: %v", err)
			}
			return
		}
	}
}

func TestPaletteCoversAllColors(t *testing.T) {
	seen := make(map[tcell.Color]bool)
	for c := tw.Black; c <= tw.White; c++ {
		tc := TerminalColor(c)
		if seen[tc] {
			t.Errorf("%v maps to a duplicate terminal color", c)
		}
		seen[tc] = true
	}
	if TerminalColor(tw.Color(99)) != tcell.ColorDefault {
		t.Error("out of range color not mapped to default")
	}
}

func TestLoopOnSimulationScreen(t *testing.T) {
	s, sim := newSimScreen(t, 12, 2)
	config := retained.DefaultLoopConfig()
	config.InitialSize = s.Size()
	loop := retained.NewLoop(config, s, s)
	loop.Tree().SetBeeper(s.Beep)

	box := retained.NewTextBox(5)
	if err := loop.Tree().SetRoot(retained.VStack("", retained.Label("name", ""), box)); err != nil {
		t.Fatal(err)
	}
	box.Focus()
	box.OnTextChanged(func(*retained.Control, retained.EventArgs) {
		if box.Text() == "ok" {
			loop.Tree().Quit()
		}
	})

	sim.InjectKey(tcell.KeyRune, 'o', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'k', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	cells, w, _ := sim.GetContents()
	if got := string(cells[w+1].Runes) + string(cells[w+2].Runes); got != "ok" {
		t.Errorf("row 1 = %q, want ok", got)
	}
}
