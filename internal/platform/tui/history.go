package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termlife/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show seed list sidebar
	sidebarWidth       = 24  // Width of seed list sidebar
	maxRuns            = 100 // Max runs to load
	allSeeds           = ""  // Filter value for every seed
)

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextSeed key.Binding
	PrevSeed key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSeed, k.PrevSeed, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSeed, k.PrevSeed},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSeed: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next seed"),
		),
		PrevSeed: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev seed"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded runs.
type HistoryModel struct {
	seeds       []string // allSeeds first, then every recorded seed
	seedCursor  int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history view. When seed is not empty the view
// starts filtered to it.
func NewHistoryModel(store *storage.Store, seed string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		seeds:       []string{allSeeds},
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if stats, err := store.AllSeedStats(); err == nil {
			for s := range stats {
				m.seeds = append(m.seeds, s)
			}
			sort.Strings(m.seeds[1:])
		}
	}
	for i, s := range m.seeds {
		if s == seed {
			m.seedCursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Seed", Width: 16},
		{Title: "Size", Width: 7},
		{Title: "Workers", Width: 8},
		{Title: "Gens", Width: 7},
		{Title: "Stable", Width: 6},
		{Title: "Avg step", Width: 10},
		{Title: "User", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the selected seed.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		var runs []storage.Run
		var err error
		if seed := m.seeds[m.seedCursor]; seed == allSeeds {
			runs, err = m.store.RecentRuns(maxRuns)
		} else {
			runs, err = m.store.RunsForSeed(seed, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
	}
	m.table.SetRows(runRows(m.runs))

	// Reset cursor to top
	m.table.GotoTop()
}

// runRows converts runs into table rows.
func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		stable := "no"
		if r.Converged {
			stable = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			seedLabel(r.Seed),
			fmt.Sprintf("%dx%d", r.Height, r.Width),
			fmt.Sprintf("%d %s", r.Workers, r.Scheduler),
			fmt.Sprintf("%d", r.Generations),
			stable,
			formatStep(r.AvgStep),
			r.User,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// seedLabel shortens a seed reference for display.
func seedLabel(seed string) string {
	if id, ok := strings.CutPrefix(seed, "builtin:"); ok {
		return id
	}
	return filepath.Base(seed)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSeed):
			m.seedCursor = (m.seedCursor + 1) % len(m.seeds)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevSeed):
			m.seedCursor--
			if m.seedCursor < 0 {
				m.seedCursor = len(m.seeds) - 1
			}
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SelectedSeed returns the current filter, empty for all seeds.
func (m HistoryModel) SelectedSeed() string {
	return m.seeds[m.seedCursor]
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if seed := m.SelectedSeed(); seed != allSeeds {
		title = fmt.Sprintf("RUN HISTORY - %s", seedLabel(seed))
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the seeds with the current one highlighted.
func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Seeds\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.seeds {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.seedCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := "All"
		if s != allSeeds {
			name = seedLabel(s)
		}
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun a pattern to start the history!")
	}

	return m.table.View()
}

// RunHistory runs the history view until the user quits.
func RunHistory(store *storage.Store, seed string, width, height int) error {
	model := NewHistoryModel(store, seed, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
