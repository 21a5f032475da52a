package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiangrant/conui"
)

// Init implements the 'conui init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("config", conui.DefaultConfigFile, "Config file to write")
	title := fs.String("title", "", "Application title (default: directory name)")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", *path)
	}

	config := conui.DefaultConfig()
	config.App.Title = *title
	if config.App.Title == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		config.App.Title = filepath.Base(cwd)
	}
	config.Log.File = "conui.log"
	config.Theme.Palette = map[string]string{
		"accent": "#00aaff",
		"muted":  "#808080",
	}

	if err := conui.SaveConfig(*path, config); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", *path)
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Printf("  conui check --config %s\n", *path)
	fmt.Printf("  conui run --config %s\n", *path)
	return nil
}
