package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/agiangrant/conui"
)

// Run implements the 'conui run' command
func Run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	path := fs.String("config", "", "Config file (default: ./conui.toml)")
	noMouse := fs.Bool("no-mouse", false, "Disable mouse reporting")
	fs.Parse(args)

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("stdout is not a terminal")
	}

	config, err := loadConfig(*path)
	if err != nil {
		return err
	}
	if *noMouse {
		config.App.Mouse = false
	}

	app, err := conui.NewApplication(config)
	if err != nil {
		return err
	}
	defer app.Close()

	d := newDemo(config.App.Title, app.Tree().Quit)
	if err := app.SetRoot(d.root); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
