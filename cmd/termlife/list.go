package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlife/internal/config"
	"github.com/vovakirdan/termlife/internal/registry"
	"github.com/vovakirdan/termlife/internal/seed"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available patterns",
	Long: `Shows the built-in patterns and any pattern files found in the
configured patterns directory (patterns_dir, default ~/.termlife/patterns).`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	builtins := registry.List()

	fmt.Println("Built-in patterns:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range builtins {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----")

	for _, p := range builtins {
		size := fmt.Sprintf("%dx%d", p.Height, p.Width)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, p.ID, size, p.Title)
	}

	dir := config.ExpandPath(cfg.PatternsDir)
	files, err := seed.LoadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot read %s: %v\n", dir, err)
	}
	if len(files) > 0 {
		fmt.Println()
		fmt.Printf("Pattern files in %s:\n", dir)
		fmt.Println()
		for _, p := range files {
			size := fmt.Sprintf("%dx%d", p.Grid.Height(), p.Grid.Width())
			fmt.Printf("  %-7s  %-20s  %s\n", size, p.Name, p.Source)
		}
	}

	fmt.Println()
	var exts []string
	for _, ext := range seed.FormatExtensions() {
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	fmt.Printf("Pattern file formats: %s (anything else is read as plain text)\n", strings.Join(exts, " "))
	fmt.Println("Run 'termlife play <id>' or 'termlife <file>' to start.")
}
