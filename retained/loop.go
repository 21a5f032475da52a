package retained

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrQuit is returned by Loop.Step once a handler called Tree.Quit.
var ErrQuit = errors.New("retained: quit requested")

// InputSource supplies raw console input. ReadInput blocks until a record
// is available or ctx is done.
type InputSource interface {
	ReadInput(ctx context.Context) (Input, error)
}

// OutputSink presents a composed frame. cursorVisible is false when no
// focused control shows a cursor.
type OutputSink interface {
	Present(frame *Buffer, cursor Point, cursorVisible bool) error
}

// LoopConfig configures a loop.
type LoopConfig struct {
	// TreeConfig configures the control tree.
	TreeConfig TreeConfig

	// InitialSize is the screen size before the first resize record.
	InitialSize Size
}

// DefaultLoopConfig returns sensible defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TreeConfig:  DefaultTreeConfig(),
		InitialSize: Size{80, 25},
	}
}

// Frame is passed to the OnFrame callback after each present.
type Frame struct {
	// Number is the monotonically increasing frame counter.
	Number uint64

	// Tree provides access to the control tree.
	Tree *Tree

	// Buffer is the composed frame that was presented.
	Buffer *Buffer
}

// Loop drives a tree from an input source to an output sink, one input
// record per cycle: route it, run layout if anything was invalidated, and
// present a new frame if anything changed.
type Loop struct {
	tree   *Tree
	input  InputSource
	output OutputSink
	logger *slog.Logger

	onFrame  func(*Frame)
	onInput  func(Input) bool
	onResize func(Size)
}

// NewLoop creates a loop with a fresh tree.
func NewLoop(config LoopConfig, input InputSource, output OutputSink) *Loop {
	tree := NewTree(config.TreeConfig)
	tree.Resize(config.InitialSize)
	return &Loop{
		tree:   tree,
		input:  input,
		output: output,
		logger: tree.logger,
	}
}

// Tree returns the tree driven by the loop.
func (l *Loop) Tree() *Tree { return l.tree }

// OnFrame sets the callback invoked after each presented frame.
func (l *Loop) OnFrame(fn func(*Frame)) { l.onFrame = fn }

// OnInput sets a callback that sees every raw record first.
// Return true to consume the record (skip routing).
func (l *Loop) OnInput(fn func(Input) bool) { l.onInput = fn }

// OnResize sets the callback for console resizes.
func (l *Loop) OnResize(fn func(Size)) { l.onResize = fn }

// Present lays out and renders the tree if anything changed since the last
// frame and hands the result to the sink.
func (l *Loop) Present() error {
	if !l.tree.NeedsRender() {
		return nil
	}
	frame := l.tree.Render()
	cursor, visible := l.tree.Cursor()
	if err := l.output.Present(frame, cursor, visible); err != nil {
		return fmt.Errorf("present frame %d: %w", l.tree.FrameNumber(), err)
	}
	if l.onFrame != nil {
		l.onFrame(&Frame{Number: l.tree.FrameNumber(), Tree: l.tree, Buffer: frame})
	}
	return nil
}

// Step reads and routes one input record, then presents. It returns ErrQuit
// once a handler has called Tree.Quit.
func (l *Loop) Step(ctx context.Context) error {
	if l.tree.QuitRequested() {
		return ErrQuit
	}
	in, err := l.input.ReadInput(ctx)
	if err != nil {
		return err
	}
	l.handleInput(in)
	if err := l.Present(); err != nil {
		return err
	}
	if l.tree.QuitRequested() {
		return ErrQuit
	}
	return nil
}

func (l *Loop) handleInput(in Input) {
	if l.onInput != nil && l.onInput(in) {
		return
	}
	if r, ok := in.(ResizeInput); ok {
		l.tree.Resize(r.Size)
		if l.onResize != nil {
			l.onResize(l.tree.Size())
		}
		return
	}
	if l.tree.Dispatch(in) == Undelivered {
		l.logger.Debug("input dropped", slog.String("input", fmt.Sprintf("%T", in)))
	}
}

// Run presents the first frame and steps until ctx is done, the input
// source is exhausted, or a handler requests quit. Quit and exhaustion
// return nil.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Present(); err != nil {
		return err
	}
	for {
		err := l.Step(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrQuit), errors.Is(err, io.EOF):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			return fmt.Errorf("run loop: %w", err)
		}
	}
}
