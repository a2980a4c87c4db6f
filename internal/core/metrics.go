package core

import (
	"sync"
	"time"
)

// Metrics accumulates per-step timing and population figures.
// The engine updates it only between generations; readers on other
// goroutines may call its getters at any time.
//
// Every executed step is observed, including the one that finds the grid
// unchanged. Once an engine has converged Steps is one more than its
// Generation.
type Metrics struct {
	mu          sync.Mutex
	steps       int
	total       time.Duration
	last        time.Duration
	population  int
}

// NewMetrics returns an empty metrics context.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Observe records one executed step.
func (m *Metrics) Observe(elapsed time.Duration, population int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps++
	m.total += elapsed
	m.last = elapsed
	m.population = population
}

// Steps returns how many steps have been observed.
func (m *Metrics) Steps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps
}

// Average returns the mean step duration, or zero before the first step.
func (m *Metrics) Average() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.steps == 0 {
		return 0
	}
	return m.total / time.Duration(m.steps)
}

// Last returns the duration of the most recent step.
func (m *Metrics) Last() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Population returns the live-cell count after the most recent step.
func (m *Metrics) Population() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.population
}

// Reset clears all accumulated figures.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = 0
	m.total = 0
	m.last = 0
	m.population = 0
}
