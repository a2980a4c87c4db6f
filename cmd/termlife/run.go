package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termlife/internal/config"
	"github.com/vovakirdan/termlife/internal/core"
	"github.com/vovakirdan/termlife/internal/platform/tui"
	"github.com/vovakirdan/termlife/internal/seed"
	"github.com/vovakirdan/termlife/internal/storage"
)

func runFile(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	logger := newLogger(cfg)

	path := args[0]
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	pattern, err := seed.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fatalf("%s not found", args[0])
		}
		fatalf("%v", err)
	}

	if err := simulate(cfg, logger, pattern); err != nil {
		fatalf("%v", err)
	}
}

// terminalSize returns the terminal size, or 80x24 when stdout is not a
// terminal.
func terminalSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}

// simulate runs pattern on a square canvas sized to the terminal and
// records the run in the history database.
func simulate(cfg config.Config, logger *log.Logger, pattern seed.Pattern) error {
	interactive := !flagPlain && term.IsTerminal(int(os.Stdout.Fd()))

	cols, rows := terminalSize()
	if interactive {
		// Leave room for the status line and each cell's trailing space.
		cols, rows = tui.CanvasFor(cols, rows, tui.StatusLines)
	}
	rc := cfg.Runtime(cols, rows)
	size := rc.CanvasSize()

	p, err := pattern.Embed(size, size, cfg.AlignmentValue())
	if err != nil {
		return err
	}

	metrics := core.NewMetrics()
	engine, err := rc.NewEngine(p.Grid, metrics)
	if err != nil {
		return err
	}
	defer engine.Close()

	logger.Debug("starting run",
		"seed", p.Source,
		"size", size,
		"workers", engine.Workers(),
		"scheduler", rc.Scheduler,
	)

	opts := tui.Options{
		Title:    p.Name,
		Particle: cfg.ParticleRune(),
		Color:    cfg.ColorValue(),
		Refresh:  cfg.Refresh,
		Timing:   cfg.Timing,
	}

	var result tui.Result
	if interactive {
		result, err = tui.Run(engine, metrics, opts)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		result, err = tui.RunPlain(ctx, os.Stdout, engine, metrics, opts)
		stop()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	if err != nil {
		return err
	}

	logger.Info("run finished",
		"seed", p.Name,
		"generations", result.Generations,
		"converged", result.Converged,
		"avg_step", result.AvgStep,
	)

	saveRun(cfg, logger, storage.Run{
		Seed:        p.Source,
		Height:      size,
		Width:       size,
		Workers:     engine.Workers(),
		Scheduler:   string(rc.Scheduler),
		Generations: result.Generations,
		Converged:   result.Converged,
		AvgStep:     result.AvgStep,
		User:        os.Getenv("USER"),
	})
	return nil
}

// saveRun records a run. Storage failures are logged and otherwise ignored.
func saveRun(cfg config.Config, logger *log.Logger, run storage.Run) {
	store, err := storage.Open(cfg.DB)
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return
	}
	logger.Debug("run saved", "id", id)
}
