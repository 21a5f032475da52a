package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/agiangrant/conui"
	"github.com/agiangrant/conui/tw"
)

// Check implements the 'conui check' command
func Check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("config", "", "Config file (default: ./conui.toml)")
	fs.Parse(args)

	config, err := loadConfig(*path)
	if err != nil {
		return err
	}
	return describe(os.Stdout, config)
}

// describe prints the effective settings and the palette color each theme
// alias resolves to.
func describe(w io.Writer, config conui.Config) error {
	fmt.Fprintf(w, "title:        %s\n", config.App.Title)
	fmt.Fprintf(w, "log:          level=%s file=%q\n", config.Log.Level, config.Log.File)
	fmt.Fprintf(w, "double click: %dms\n", config.Input.DoubleClickMS)
	fmt.Fprintf(w, "tab nav:      %v\n", config.Input.TabNavigation)

	if len(config.Theme.Palette) == 0 {
		fmt.Fprintln(w, "palette:      (none)")
		return nil
	}
	fmt.Fprintln(w, "palette:")
	aliases := make([]string, 0, len(config.Theme.Palette))
	for alias := range config.Theme.Palette {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)
	for _, alias := range aliases {
		hex := config.Theme.Palette[alias]
		c, err := tw.ParseHex(hex)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-10s %s -> %s\n", alias, hex, c)
	}
	return nil
}
