package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termlife/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	stableStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// cellWidth is the number of columns one cell occupies: the symbol and a
// trailing space.
const cellWidth = 2

// RenderGrid draws g as plain text. Each cell is the particle (alive) or a
// space (dead) followed by a space; rows end with a newline.
func RenderGrid(g *core.Grid, particle rune) string {
	if g == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(g.Height() * (g.Width()*cellWidth + 1))

	for r := range g.Height() {
		for c := range g.Width() {
			if g.At(r, c) == core.Alive {
				sb.WriteRune(particle)
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderStyled draws g like RenderGrid with live cells coloured.
// Groups adjacent cells with the same state to minimize ANSI escape sequences.
// Rows are joined without a trailing newline.
func RenderStyled(g *core.Grid, particle rune, color core.Color) string {
	if g == nil {
		return ""
	}

	style, ok := colorStyles[color]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}

	var sb strings.Builder
	sb.Grow(g.Height() * (g.Width()*cellWidth*2 + 1))

	for r := range g.Height() {
		if r > 0 {
			sb.WriteByte('\n')
		}

		c := 0
		for c < g.Width() {
			state := g.At(r, c)

			// Collect consecutive cells with the same state
			var run strings.Builder
			for c < g.Width() && g.At(r, c) == state {
				if state == core.Alive {
					run.WriteRune(particle)
				} else {
					run.WriteByte(' ')
				}
				run.WriteByte(' ')
				c++
			}

			if state == core.Alive {
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
		}
	}
	return sb.String()
}

// CanvasFor converts a terminal size into the screen dimensions handed to
// core.RuntimeConfig, in cells. reserved rows are kept for status lines.
func CanvasFor(cols, rows, reserved int) (w, h int) {
	return core.Max(1, cols/cellWidth), core.Max(1, rows-reserved)
}

// centerText pads text on the left so it is centered in width columns.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
