package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/termlife/internal/core"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// RunPlain drives engine without Bubble Tea: before every step it clears
// the screen, prints the generation and sleeps for the refresh interval.
// It returns once the engine converges or ctx is cancelled; cancellation is
// only observed between generations.
func RunPlain(ctx context.Context, w io.Writer, engine *core.Engine, metrics *core.Metrics, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if metrics == nil {
		metrics = core.NewMetrics()
	}
	out := bufio.NewWriter(w)

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	err := engine.Run(func(s core.Snapshot) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		out.WriteString(clearScreen)
		out.WriteString(RenderGrid(s.Grid, opts.Particle))
		if opts.Timing {
			fmt.Fprintf(out, "gen %d  pop %d  avg %s\n", s.Generation, s.Alive, formatStep(metrics.Average()))
		}
		if err := out.Flush(); err != nil {
			return err
		}
		opts.Tracker.record(Result{
			Generations: s.Generation,
			AvgStep:     metrics.Average(),
		})

		timer.Reset(opts.Refresh)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})

	result := Result{
		Generations: engine.Generation(),
		Converged:   engine.Converged(),
		AvgStep:     metrics.Average(),
	}
	opts.Tracker.record(result)
	return result, err
}
