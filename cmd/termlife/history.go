package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlife/internal/platform/tui"
	"github.com/vovakirdan/termlife/internal/registry"
	"github.com/vovakirdan/termlife/internal/storage"
)

var (
	flagHistoryLimit       int
	flagHistoryInteractive bool
	flagHistoryClear       bool
	flagHistoryID          int64
)

var historyCmd = &cobra.Command{
	Use:   "history [seed]",
	Short: "Show recorded runs",
	Long: `Display recent runs from the history database. When a seed is given
(a built-in pattern ID or a pattern file path) only its runs are shown,
followed by its statistics.

Examples:
  termlife history
  termlife history glider
  termlife history ./seeds/acorn.txt --limit 5
  termlife history --interactive
  termlife history glider --clear
  termlife history --id 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVarP(&flagHistoryInteractive, "interactive", "i", false, "Browse runs in a table view")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs of the seed")
	historyCmd.Flags().Int64Var(&flagHistoryID, "id", 0, "Show a single run")
}

// seedKey maps a command line seed reference to the key runs are stored
// under.
func seedKey(ref string) string {
	if registry.Exists(ref) {
		return "builtin:" + ref
	}
	if abs, err := filepath.Abs(ref); err == nil {
		return abs
	}
	return ref
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	var seed string
	if len(args) == 1 {
		seed = seedKey(args[0])
	}

	// Open run storage
	store, err := storage.Open(cfg.DB)
	if err != nil {
		fatalf("opening run history database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if seed == "" {
			store.Close()
			fatalf("--clear needs a seed")
		}
		if err := store.ClearRuns(seed); err != nil {
			store.Close()
			fatalf("%v", err)
		}
		fmt.Printf("Cleared runs of %s\n", args[0])
		return
	}

	if flagHistoryID > 0 {
		run, err := store.RunByID(flagHistoryID)
		if err != nil {
			store.Close()
			fatalf("%v", err)
		}
		if run == nil {
			store.Close()
			fatalf("no run with ID %d", flagHistoryID)
		}
		printRun(*run)
		return
	}

	if flagHistoryInteractive {
		cols, rows := terminalSize()
		if err := tui.RunHistory(store, seed, cols, rows); err != nil {
			store.Close()
			fatalf("%v", err)
		}
		return
	}

	var runs []storage.Run
	if seed == "" {
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		runs, err = store.RunsForSeed(seed, flagHistoryLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if seed == "" {
		fmt.Println("Recent runs")
	} else {
		fmt.Printf("Runs - %s\n", args[0])
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'termlife play <id>' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-20s  %-7s  %-10s  %-8s  %-6s  %-10s  %s\n",
		"ID", "Seed", "Size", "Workers", "Gens", "Stable", "Avg step", "Date")
	fmt.Printf("  %-5s  %-20s  %-7s  %-10s  %-8s  %-6s  %-10s  %s\n",
		"--", "----", "----", "-------", "----", "------", "--------", "----")

	for _, r := range runs {
		stable := "no"
		if r.Converged {
			stable = "yes"
		}
		fmt.Printf("  %-5d  %-20s  %-7s  %-10s  %-8d  %-6s  %-10s  %s\n",
			r.ID,
			displaySeed(r.Seed),
			fmt.Sprintf("%dx%d", r.Height, r.Width),
			fmt.Sprintf("%d %s", r.Workers, r.Scheduler),
			r.Generations,
			stable,
			r.AvgStep.String(),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if seed != "" {
		stats, err := store.SeedStats(seed)
		if err == nil && stats.Runs > 0 {
			fmt.Println()
			fmt.Printf("Runs: %d  Stable: %d  Longest: %d  Average: %.1f generations\n",
				stats.Runs, stats.ConvergedRuns, stats.MaxGenerations, stats.AvgGenerations)
		}
	}
}

// displaySeed shortens a stored seed key for the table.
func displaySeed(seed string) string {
	if id, ok := strings.CutPrefix(seed, "builtin:"); ok {
		return id
	}
	return filepath.Base(seed)
}

// printRun prints every recorded field of one run.
func printRun(r storage.Run) {
	fmt.Printf("Run %d\n", r.ID)
	fmt.Println()
	fmt.Printf("  Seed:        %s\n", r.Seed)
	fmt.Printf("  Canvas:      %dx%d\n", r.Height, r.Width)
	fmt.Printf("  Workers:     %d (%s)\n", r.Workers, r.Scheduler)
	fmt.Printf("  Generations: %d\n", r.Generations)
	fmt.Printf("  Stable:      %t\n", r.Converged)
	fmt.Printf("  Avg step:    %s\n", r.AvgStep)
	if r.User != "" {
		fmt.Printf("  User:        %s\n", r.User)
	}
	fmt.Printf("  Date:        %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
}
