package core

// RuntimeConfig contains the settings a front end passes when it builds an
// engine. Hosts fill ScreenW/ScreenH from the terminal or SSH PTY.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	TickRate  int           // Generations per second (default 25)
	Workers   int           // Row bands computed in parallel
	Scheduler SchedulerKind // How bands are run
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  25,
		Workers:   4,
		Scheduler: SchedulerSpawn,
	}
}

// CanvasSize returns the side of the square canvas that fits the screen:
// the smaller of the two screen dimensions, at least 1.
func (c RuntimeConfig) CanvasSize() int {
	return Max(1, Min(c.ScreenW, c.ScreenH))
}

// WorkersFor returns the worker count clamped to [1, height] so it can be
// passed to NewEngine for a grid of that height.
func (c RuntimeConfig) WorkersFor(height int) int {
	return Clamp(c.Workers, 1, Max(1, height))
}

// NewEngine builds an engine for seed using this configuration.
func (c RuntimeConfig) NewEngine(seed *Grid, metrics *Metrics) (*Engine, error) {
	if seed == nil {
		return nil, ErrInvalidDimensions
	}
	workers := c.WorkersFor(seed.Height())
	sched, err := NewScheduler(c.Scheduler, workers)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithWorkers(workers), WithScheduler(sched)}
	if metrics != nil {
		opts = append(opts, WithMetrics(metrics))
	}
	return NewEngine(seed, opts...)
}
