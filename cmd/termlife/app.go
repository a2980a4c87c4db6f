package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlife/internal/config"
	"github.com/vovakirdan/termlife/internal/core"
)

// loadConfig reads the config file and applies the flags the user set
// explicitly on the command line.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("particle") {
		cfg.Particle = flagParticle
	}
	if flags.Changed("alignment") {
		// Unknown keywords keep the configured alignment.
		if _, ok := core.ParseAlignmentKeyword(flagAlignment); ok {
			cfg.Alignment = flagAlignment
		}
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("scheduler") {
		cfg.Scheduler = flagScheduler
	}
	if flags.Changed("refresh") {
		cfg.Refresh = flagRefresh
	}
	if flags.Changed("timing") {
		cfg.Timing = flagTiming
	}
	if flags.Changed("db") {
		cfg.DB = flagDBPath
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	return cfg
}

// newLogger creates the process logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "termlife",
	})
	logger.SetLevel(cfg.Level())
	return logger
}
