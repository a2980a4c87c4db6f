// termlife runs Conway's Game of Life in the terminal, computing each
// generation in parallel row bands.
//
// Usage:
//
//	termlife [-p <particle>] [-a <alignment>] <file>  - Run a seed file
//	termlife play <pattern>                           - Run a built-in pattern
//	termlife list                                     - List available patterns
//	termlife history [seed]                           - Show recorded runs
//	termlife serve                                    - Start SSH viewer
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.termlife/config.yaml)
//	--workers <n>        - Row bands computed in parallel (default: CPU count)
//	--scheduler <kind>   - spawn or pool
//	--refresh <duration> - Delay between generations (default: 40ms)
//	--timing             - Show average step time
//	--plain              - Print frames instead of the interactive view
//	--db <path>          - Run history database (default: ~/.termlife/runs.db)
//	--verbose            - Debug logging
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	// Import patterns to register them
	_ "github.com/vovakirdan/termlife/internal/patterns"
)

var (
	// Global flags
	flagConfig    string
	flagParticle  string
	flagAlignment string
	flagWorkers   int
	flagScheduler string
	flagRefresh   time.Duration
	flagTiming    bool
	flagPlain     bool
	flagDBPath    string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error and usage.
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termlife [-p <particle>] [-a <alignment>] <file>",
	Short: "Conway's Game of Life in your terminal",
	Long: `termlife plays Conway's Game of Life on a square canvas sized to your
terminal. Each generation is computed in parallel row bands and the run
stops once the population no longer changes.

Seed files are plain text (any non-blank character is a live cell),
.cells files, or YAML patterns with a rows list.

Alignments: center, top-left, top-right, bottom-left, bottom-right

Examples:
  termlife seeds/glider.txt
  termlife -p o -a top-left seeds/acorn.cells
  termlife play gosper-gun --workers 8 --scheduler pool
  termlife list
  termlife history glider
  termlife serve --ssh :2222`,
	Args: cobra.ExactArgs(1),
	Run:  runFile,
}

func init() {
	addGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// addGlobalFlags registers the flags shared by every command on cmd.
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&flagParticle, "particle", "p", "*", "Symbol for live cells")
	flags.StringVarP(&flagAlignment, "alignment", "a", "center", "Seed placement on the canvas")
	flags.StringVar(&flagConfig, "config", "", "Path to config file")
	flags.IntVar(&flagWorkers, "workers", 0, "Row bands computed in parallel (0 = CPU count)")
	flags.StringVar(&flagScheduler, "scheduler", "spawn", "Band scheduler: spawn or pool")
	flags.DurationVar(&flagRefresh, "refresh", 40*time.Millisecond, "Delay between generations")
	flags.BoolVar(&flagTiming, "timing", false, "Show average step time")
	flags.BoolVar(&flagPlain, "plain", false, "Print frames instead of the interactive view")
	flags.StringVar(&flagDBPath, "db", "~/.termlife/runs.db", "Path to run history database")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
