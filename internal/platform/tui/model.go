package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termlife/internal/core"
)

// StatusLines is the number of terminal rows below the grid: the status
// line and the key help.
const StatusLines = 2

// DefaultRefresh is the delay between generations when none is configured.
const DefaultRefresh = 40 * time.Millisecond

// Options controls how a simulation is displayed.
type Options struct {
	Title    string        // Shown at the start of the status line
	Particle rune          // Symbol for live cells
	Color    core.Color    // Colour of live cells
	Refresh  time.Duration // Delay between generations
	Timing   bool          // Show the average step time
	Tracker  *Tracker      // Optional, receives progress after every step
}

func (o Options) withDefaults() Options {
	if o.Particle == 0 {
		o.Particle = '*'
	}
	if o.Refresh <= 0 {
		o.Refresh = DefaultRefresh
	}
	return o
}

// Result summarises a finished or interrupted run.
type Result struct {
	Generations int
	Converged   bool
	AvgStep     time.Duration
}

// Tracker exposes run progress to other goroutines, such as the SSH
// middleware that records a session once it ends.
type Tracker struct {
	mu     sync.Mutex
	result Result
}

func (t *Tracker) record(r Result) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.result = r
	t.mu.Unlock()
}

// Result returns the latest recorded progress.
func (t *Tracker) Result() Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Model is the Bubble Tea model for a running simulation.
// It steps the engine once per tick, so a quit request is honoured between
// generations. Once the population is stable the last frame is held until
// the user quits.
type Model struct {
	engine   *core.Engine
	metrics  *core.Metrics
	opts     Options
	keys     KeyMap
	help     help.Model
	width    int
	paused   bool
	timing   bool
	quitting bool
}

// NewModel creates a model for engine. metrics should be the context the
// engine was built with; it may be nil.
func NewModel(engine *core.Engine, metrics *core.Metrics, opts Options) Model {
	if metrics == nil {
		metrics = core.NewMetrics()
	}
	opts = opts.withDefaults()

	h := help.New()
	h.ShowAll = false

	return Model{
		engine:  engine,
		metrics: metrics,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    h,
		timing:  opts.Timing,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.opts.Tracker.record(m.Result())
	return tickCmd(m.opts.Refresh)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Pause):
		if !m.engine.Converged() {
			m.paused = !m.paused
			m.keys.Step.SetEnabled(m.paused)
		}

	case key.Matches(msg, m.keys.Step):
		if m.paused && !m.engine.Converged() {
			m.step()
		}

	case key.Matches(msg, m.keys.Timing):
		m.timing = !m.timing
	}

	return m, nil
}

// handleTick advances one generation unless paused. Ticking stops once the
// engine has converged.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.engine.Converged() {
		return m, nil
	}

	if !m.paused {
		m.step()
		if m.engine.Converged() {
			m.paused = false
			m.keys.Step.SetEnabled(false)
			return m, nil
		}
	}

	return m, tickCmd(m.opts.Refresh)
}

func (m *Model) step() {
	m.engine.Step()
	m.opts.Tracker.record(m.Result())
}

// Result summarises the run so far.
func (m Model) Result() Result {
	return Result{
		Generations: m.engine.Generation(),
		Converged:   m.engine.Converged(),
		AvgStep:     m.metrics.Average(),
	}
}

// Paused reports whether stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// View renders the current generation, the status line and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderStyled(m.engine.Current(), m.opts.Particle, m.opts.Color))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statusLine describes generation, population and run state.
func (m Model) statusLine() string {
	parts := make([]string, 0, 6)
	if m.opts.Title != "" {
		parts = append(parts, m.opts.Title)
	}
	parts = append(parts,
		fmt.Sprintf("gen %d", m.engine.Generation()),
		fmt.Sprintf("pop %d", m.engine.Current().Alive()),
		fmt.Sprintf("%d workers", m.engine.Workers()),
	)
	if m.timing {
		parts = append(parts, "avg "+formatStep(m.metrics.Average()))
	}

	line := statusStyle.Render(strings.Join(parts, "  "))
	switch {
	case m.engine.Converged():
		line += "  " + stableStyle.Render("stable")
	case m.paused:
		line += "  " + statusStyle.Render("paused")
	}
	return line
}

// formatStep renders a step duration with microsecond precision.
func formatStep(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

// Run starts the Bubble Tea program for engine and blocks until the user
// quits. The engine is not closed.
func Run(engine *core.Engine, metrics *core.Metrics, opts Options) (Result, error) {
	model := NewModel(engine, metrics, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return model.Result(), err
	}

	if m, ok := finalModel.(Model); ok {
		return m.Result(), nil
	}
	return model.Result(), nil
}
