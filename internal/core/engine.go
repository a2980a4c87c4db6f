package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidWorkers is returned when the worker count is outside [1, height].
	ErrInvalidWorkers = errors.New("core: worker count must be between 1 and the grid height")

	// ErrEngineClosed is returned by Run once the engine has been closed.
	ErrEngineClosed = errors.New("core: engine is closed")
)

// Snapshot is the state of the simulation between two generations.
type Snapshot struct {
	Generation int
	Grid       *Grid // engine-owned; valid until the next Step
	Alive      int
	Converged  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of row bands computed in parallel.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithScheduler sets the scheduler used to run bands. The engine takes
// ownership and closes it in Close.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithMetrics attaches a metrics context updated after every generation.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine owns the current and next-generation grids and advances the
// simulation one generation at a time until it stops changing.
//
// During a generation the current grid is read-only and each worker writes
// only the rows of its own band in the next grid. Buffers change roles by
// swapping pointers once every band has finished.
type Engine struct {
	cur  *Grid
	next *Grid

	workers int
	bands   []Band
	changed []bool // one slot per band, written only by that band's worker
	sched   Scheduler
	metrics *Metrics

	generation int
	converged  bool
	closed     bool
}

// NewEngine creates an engine starting from seed. The engine takes
// ownership of seed; callers must not modify it afterwards.
func NewEngine(seed *Grid, opts ...Option) (*Engine, error) {
	if seed == nil || seed.height <= 0 || seed.width <= 0 {
		return nil, ErrInvalidDimensions
	}
	for i, row := range seed.cells {
		if len(row) != seed.width {
			return nil, fmt.Errorf("%w: row %d", ErrNotRectangular, i)
		}
	}

	e := &Engine{
		cur:     seed,
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.workers < 1 || e.workers > seed.height {
		if e.sched != nil {
			e.sched.Close()
		}
		return nil, fmt.Errorf("%w: %d workers for %d rows", ErrInvalidWorkers, e.workers, seed.height)
	}
	if e.sched == nil {
		e.sched = SpawnScheduler{}
	}

	next, err := NewGrid(seed.height, seed.width)
	if err != nil {
		return nil, err
	}
	e.next = next
	e.bands = Partition(seed.height, e.workers)
	e.changed = make([]bool, len(e.bands))
	return e, nil
}

// Step computes one generation. If the new generation equals the current
// one the engine becomes converged and the current grid is left as is;
// otherwise the buffers are swapped. It returns whether anything changed.
// Step on a converged or closed engine does nothing.
func (e *Engine) Step() bool {
	if e.converged || e.closed {
		return false
	}

	start := time.Now()
	cur, next := e.cur, e.next
	e.sched.Run(e.bands, func(i int, b Band) {
		e.changed[i] = stepRows(cur, next, b)
	})

	changed := false
	for _, c := range e.changed {
		if c {
			changed = true
			break
		}
	}

	if changed {
		e.cur, e.next = e.next, e.cur
		e.generation++
	} else {
		e.converged = true
	}

	if e.metrics != nil {
		e.metrics.Observe(time.Since(start), e.cur.Alive())
	}
	return changed
}

// Run emits a snapshot of the current grid and then steps, repeating until
// the simulation converges. If emit returns an error the loop stops before
// the next generation and the error is returned.
func (e *Engine) Run(emit func(Snapshot) error) error {
	for !e.converged {
		if e.closed {
			return ErrEngineClosed
		}
		if err := emit(e.Snapshot()); err != nil {
			return err
		}
		e.Step()
	}
	return nil
}

// Snapshot describes the current generation.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Generation: e.generation,
		Grid:       e.cur,
		Alive:      e.cur.Alive(),
		Converged:  e.converged,
	}
}

// Current returns the current grid. It is replaced by the next Step.
func (e *Engine) Current() *Grid {
	return e.cur
}

// Generation returns how many generations have changed the grid so far.
func (e *Engine) Generation() int {
	return e.generation
}

// Converged reports whether the last Step produced no change.
func (e *Engine) Converged() bool {
	return e.converged
}

// Workers returns the number of row bands.
func (e *Engine) Workers() int {
	return e.workers
}

// Bands returns the row bands used for every generation.
func (e *Engine) Bands() []Band {
	out := make([]Band, len(e.bands))
	copy(out, e.bands)
	return out
}

// Close releases the scheduler. After Close, Step does nothing and Run
// returns ErrEngineClosed. It is safe to call more than once.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.sched.Close()
}

// StepSerial computes the next generation of src over the whole grid on the
// calling goroutine. It is the single-threaded reference for the banded
// update.
func StepSerial(src *Grid) *Grid {
	dst := &Grid{height: src.height, width: src.width}
	dst.allocate()
	stepRows(src, dst, Band{Start: 0, End: src.height})
	return dst
}
