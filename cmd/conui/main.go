package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/conui/cmd/conui/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = commands.Run(args)
	case "init":
		err = commands.Init(args)
	case "check":
		err = commands.Check(args)
	case "version", "-v", "--version":
		fmt.Printf("conui version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`conui - console UI toolkit demo

Usage: conui <command> [options]

Commands:
  run       Run the demo form in this terminal
  init      Write a default conui.toml
  check     Validate a config file and show how theme colors map
  version   Print version information
  help      Show this help message

Examples:
  conui init                      Create conui.toml with defaults
  conui run                       Run with ./conui.toml if present
  conui run --config theme.yaml   Run with a YAML config
  conui check --config conui.toml

Keys:
  Tab / Shift+Tab move focus, Enter or Space press buttons, Ctrl+Q quits.`)
}
