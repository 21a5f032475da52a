// Package conui wires a retained control tree to a terminal: it loads the
// configuration, builds the logger, opens the console and runs the frame
// loop.
//
//	app, err := conui.NewApplication(conui.DefaultConfig())
//	if err != nil { ... }
//	defer app.Close()
//	app.SetRoot(retained.VStack("", retained.Label("Name", ""), retained.Field(20, "")))
//	err = app.Run(ctx)
package conui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/agiangrant/conui/internal/console"
	"github.com/agiangrant/conui/retained"
)

// Application owns one console and the loop driving a control tree on it.
type Application struct {
	config    Config
	logger    *slog.Logger
	logCloser io.Closer
	screen    *console.Screen
	loop      *retained.Loop
	quitKey   retained.KeyInput
}

// NewApplication opens the controlling terminal.
func NewApplication(config Config) (*Application, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewApplicationWithScreen(config, s)
}

// NewApplicationWithScreen runs on an uninitialized tcell screen, such as a
// simulation screen in tests.
func NewApplicationWithScreen(config Config, s tcell.Screen) (*Application, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger, logCloser, err := NewLogger(config.Log)
	if err != nil {
		return nil, err
	}
	if _, err := config.Theme.Apply(); err != nil {
		logCloser.Close()
		return nil, err
	}

	opts := console.DefaultOptions()
	opts.Mouse = config.App.Mouse
	opts.Logger = logger
	screen, err := console.NewWithScreen(s, opts)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	loopConfig := retained.DefaultLoopConfig()
	loopConfig.TreeConfig = config.TreeConfig(logger)
	loopConfig.InitialSize = screen.Size()

	a := &Application{
		config:    config,
		logger:    logger,
		logCloser: logCloser,
		screen:    screen,
		loop:      retained.NewLoop(loopConfig, screen, screen),
		quitKey: retained.KeyInput{
			Key:       retained.KeyRune,
			Char:      'q',
			Modifiers: retained.ModCtrl,
			Down:      true,
		},
	}
	a.loop.Tree().SetBeeper(screen.Beep)
	a.loop.OnInput(a.interceptQuit)
	a.loop.OnResize(func(size retained.Size) {
		a.logger.Info("console resized", slog.Int("width", size.Width), slog.Int("height", size.Height))
	})
	return a, nil
}

// Config returns the configuration the application was built with.
func (a *Application) Config() Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Tree returns the control tree.
func (a *Application) Tree() *retained.Tree { return a.loop.Tree() }

// Loop returns the frame loop.
func (a *Application) Loop() *retained.Loop { return a.loop }

// SetRoot installs el as the root control.
func (a *Application) SetRoot(el retained.Element) error {
	if err := a.loop.Tree().SetRoot(el); err != nil {
		return fmt.Errorf("set root: %w", err)
	}
	return nil
}

// SetQuitKey changes the key that stops Run. The default is Ctrl+Q.
func (a *Application) SetQuitKey(key retained.KeyInput) {
	key.Down = true
	a.quitKey = key
}

func (a *Application) interceptQuit(in retained.Input) bool {
	if k, ok := in.(retained.KeyInput); ok && k == a.quitKey {
		a.logger.Debug("quit key pressed")
		a.loop.Tree().Quit()
		return true
	}
	return false
}

// Run sizes the tree to the console, focuses the first tab stop and runs
// the loop until the quit key, Tree.Quit or ctx cancellation.
func (a *Application) Run(ctx context.Context) error {
	tree := a.loop.Tree()
	if tree.Root() == nil {
		return errors.New("run: no root control")
	}
	tree.Resize(a.screen.Size())
	if tree.Focus().Focused() == nil {
		tree.Focus().MoveNext(false)
	}

	a.logger.Info("application started", slog.String("title", a.config.App.Title))
	err := a.loop.Run(ctx)
	a.logger.Info("application stopped", slog.Uint64("frames", tree.FrameNumber()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close restores the terminal and closes the log file.
func (a *Application) Close() error {
	return errors.Join(a.screen.Close(), a.logCloser.Close())
}
