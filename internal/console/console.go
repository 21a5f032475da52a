// Package console connects a retained control tree to a real terminal
// through tcell. A Screen is both the loop's input source and its output
// sink.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/agiangrant/conui/retained"
	"github.com/agiangrant/conui/tw"
)

// ErrClosed is returned by Present after Close.
var ErrClosed = errors.New("console: screen closed")

// Options configures a Screen.
type Options struct {
	// Mouse enables mouse reporting.
	// Default: true
	Mouse bool

	// EventBuffer is the number of terminal events queued ahead of the loop.
	// Default: 64
	EventBuffer int

	// Logger receives debug records for ignored terminal events.
	Logger *slog.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Mouse:       true,
		EventBuffer: 64,
	}
}

// Screen adapts a tcell screen. Terminal events are read on a background
// goroutine and handed to ReadInput over a channel; everything else must be
// called from the loop goroutine.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	logger *slog.Logger

	// Mouse button mask after the previous mouse event
	buttons tcell.ButtonMask

	closeOnce sync.Once
	closed    bool
}

// Open initializes the controlling terminal.
func Open(opts Options) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewWithScreen(s, opts)
}

// NewWithScreen wraps an uninitialized tcell screen, such as a simulation
// screen in tests, and initializes it.
func NewWithScreen(screen tcell.Screen, opts Options) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultOptions().EventBuffer
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Mouse {
		screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseMotionEvents)
	}
	screen.SetStyle(styleFor(retained.DefaultAttr))
	screen.HideCursor()
	screen.Clear()

	s := &Screen{
		screen: screen,
		events: make(chan tcell.Event, opts.EventBuffer),
		done:   make(chan struct{}),
		logger: opts.Logger,
	}
	go s.poll()
	return s, nil
}

func (s *Screen) poll() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Size returns the terminal size in cells.
func (s *Screen) Size() retained.Size {
	w, h := s.screen.Size()
	return retained.Size{Width: w, Height: h}
}

// ReadInput blocks until the next terminal event that maps to an input
// record. It returns io.EOF once the screen is closed.
func (s *Screen) ReadInput(ctx context.Context) (retained.Input, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-s.events:
			if !ok {
				return nil, io.EOF
			}
			if in := s.convert(ev); in != nil {
				return in, nil
			}
		}
	}
}

func (s *Screen) convert(ev tcell.Event) retained.Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return convertKey(ev)
	case *tcell.EventMouse:
		return s.convertMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return retained.ResizeInput{Size: retained.Size{Width: w, Height: h}}
	}
	s.logger.Debug("terminal event ignored", slog.String("type", fmt.Sprintf("%T", ev)))
	return nil
}

// convertMouse derives the record kind from the change in button mask,
// since terminals only report the current state.
func (s *Screen) convertMouse(ev *tcell.EventMouse) retained.Input {
	x, y := ev.Position()
	mask := ev.Buttons()
	in := retained.MouseInput{
		Position:  retained.Point{X: x, Y: y},
		Modifiers: convertModifiers(ev.Modifiers()),
	}
	if mask&tcell.WheelUp != 0 {
		in.Kind, in.WheelDelta = retained.MouseKindWheel, 1
	} else if mask&tcell.WheelDown != 0 {
		in.Kind, in.WheelDelta = retained.MouseKindWheel, -1
	}

	buttons := mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	in.Left = buttonState(buttons, tcell.Button1)
	in.Right = buttonState(buttons, tcell.Button2)
	in.Middle = buttonState(buttons, tcell.Button3)

	if in.Kind != retained.MouseKindWheel {
		switch {
		case buttons&^s.buttons != 0:
			in.Kind = retained.MouseKindDown
		case s.buttons&^buttons != 0:
			in.Kind = retained.MouseKindUp
		default:
			in.Kind = retained.MouseKindMove
		}
	}
	s.buttons = buttons
	return in
}

func buttonState(mask, b tcell.ButtonMask) retained.ButtonState {
	if mask&b != 0 {
		return retained.Pressed
	}
	return retained.Released
}

// Present draws frame and positions the cursor.
func (s *Screen) Present(frame *retained.Buffer, cursor retained.Point, cursorVisible bool) error {
	if s.closed {
		return ErrClosed
	}
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			c, _ := frame.Cell(x, y)
			if c.Char == 0 {
				// Trailing half of a wide rune drawn at x-1
				continue
			}
			s.screen.SetContent(x, y, c.Char, nil, styleFor(c.Attr))
		}
	}
	if cursorVisible {
		s.screen.ShowCursor(cursor.X, cursor.Y)
	} else {
		s.screen.HideCursor()
	}
	s.screen.Show()
	return nil
}

// Beep sounds the terminal bell.
func (s *Screen) Beep() {
	if err := s.screen.Beep(); err != nil {
		s.logger.Debug("beep failed", slog.Any("error", err))
	}
}

// Close restores the terminal. It is safe to call more than once.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		s.closed = true
		close(s.done)
		s.screen.Fini()
	})
	return nil
}

// ============================================================================
// Colors
// ============================================================================

// palette maps console colors onto the terminal's 16 ANSI colors.
var palette = [16]tcell.Color{
	tw.Black:       tcell.ColorBlack,
	tw.DarkBlue:    tcell.ColorNavy,
	tw.DarkGreen:   tcell.ColorGreen,
	tw.DarkCyan:    tcell.ColorTeal,
	tw.DarkRed:     tcell.ColorMaroon,
	tw.DarkMagenta: tcell.ColorPurple,
	tw.DarkYellow:  tcell.ColorOlive,
	tw.Gray:        tcell.ColorSilver,
	tw.DarkGray:    tcell.ColorGray,
	tw.Blue:        tcell.ColorBlue,
	tw.Green:       tcell.ColorLime,
	tw.Cyan:        tcell.ColorAqua,
	tw.Red:         tcell.ColorRed,
	tw.Magenta:     tcell.ColorFuchsia,
	tw.Yellow:      tcell.ColorYellow,
	tw.White:       tcell.ColorWhite,
}

// styles holds one precomputed style per attribute value.
var styles = func() (out [256]tcell.Style) {
	for i := range out {
		a := retained.Attr(i)
		out[i] = tcell.StyleDefault.
			Foreground(palette[a.Foreground()]).
			Background(palette[a.Background()])
	}
	return out
}()

func styleFor(a retained.Attr) tcell.Style { return styles[a] }

// TerminalColor returns the tcell color used for c.
func TerminalColor(c tw.Color) tcell.Color {
	if int(c) >= len(palette) {
		return tcell.ColorDefault
	}
	return palette[c]
}
