package core

import (
	"fmt"
	"sync"
)

// Scheduler runs one task per band and returns only after every task has
// finished. That return is the generation barrier: no caller ever observes
// a partially computed generation.
type Scheduler interface {
	// Run calls fn(i, bands[i]) for every band, possibly concurrently,
	// and blocks until all calls have returned.
	Run(bands []Band, fn func(i int, b Band))

	// Close releases any goroutines held by the scheduler.
	Close()
}

// SchedulerKind names a Scheduler implementation.
type SchedulerKind string

const (
	// SchedulerSpawn starts fresh goroutines every generation.
	SchedulerSpawn SchedulerKind = "spawn"
	// SchedulerPool reuses a fixed set of goroutines across generations.
	SchedulerPool SchedulerKind = "pool"
)

// ParseSchedulerKind converts a name into a SchedulerKind.
// An empty name selects SchedulerSpawn.
func ParseSchedulerKind(s string) (SchedulerKind, error) {
	switch kind := SchedulerKind(s); kind {
	case "":
		return SchedulerSpawn, nil
	case SchedulerSpawn, SchedulerPool:
		return kind, nil
	default:
		return "", fmt.Errorf("core: unknown scheduler %q", s)
	}
}

// NewScheduler creates a scheduler of the given kind.
// An empty kind selects SchedulerSpawn.
func NewScheduler(kind SchedulerKind, workers int) (Scheduler, error) {
	switch kind {
	case "", SchedulerSpawn:
		return SpawnScheduler{}, nil
	case SchedulerPool:
		return NewPoolScheduler(workers), nil
	default:
		return nil, fmt.Errorf("core: unknown scheduler %q", kind)
	}
}

// SpawnScheduler forks one goroutine per band and joins them with a
// WaitGroup. It holds no state between generations.
type SpawnScheduler struct{}

// Run implements Scheduler.
func (SpawnScheduler) Run(bands []Band, fn func(i int, b Band)) {
	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		go func() {
			defer wg.Done()
			fn(i, b)
		}()
	}
	wg.Wait()
}

// Close implements Scheduler.
func (SpawnScheduler) Close() {}

// poolJob is one band of work handed to a pool goroutine.
type poolJob struct {
	index int
	band  Band
	fn    func(i int, b Band)
	done  *sync.WaitGroup
}

// PoolScheduler keeps a fixed number of goroutines alive and feeds them
// bands through a channel. Each Run waits on its own WaitGroup, so the
// barrier semantics match SpawnScheduler.
type PoolScheduler struct {
	jobs      chan poolJob
	closeOnce sync.Once
}

// NewPoolScheduler starts workers goroutines. workers below 1 is treated as 1.
func NewPoolScheduler(workers int) *PoolScheduler {
	if workers < 1 {
		workers = 1
	}
	p := &PoolScheduler{
		jobs: make(chan poolJob, workers),
	}
	for range workers {
		go p.loop()
	}
	return p
}

func (p *PoolScheduler) loop() {
	for job := range p.jobs {
		job.fn(job.index, job.band)
		job.done.Done()
	}
}

// Run implements Scheduler. It must not be called after Close.
func (p *PoolScheduler) Run(bands []Band, fn func(i int, b Band)) {
	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		p.jobs <- poolJob{index: i, band: b, fn: fn, done: &wg}
	}
	wg.Wait()
}

// Close stops the pool goroutines. It is safe to call more than once.
func (p *PoolScheduler) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
}
