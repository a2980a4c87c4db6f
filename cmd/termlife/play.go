package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlife/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <pattern>",
	Short: "Run a built-in pattern",
	Long: `Run one of the built-in patterns on a canvas sized to your terminal.

Examples:
  termlife play glider
  termlife play r-pentomino --timing
  termlife play pulsar -p o --plain`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	id := args[0]

	// Check if pattern exists
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown pattern %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'termlife list' to see available patterns.")
		os.Exit(1)
	}

	cfg := loadConfig(cmd)
	logger := newLogger(cfg)

	pattern, err := registry.Create(id)
	if err != nil {
		fatalf("creating pattern: %v", err)
	}

	if err := simulate(cfg, logger, pattern); err != nil {
		fatalf("%v", err)
	}
}
