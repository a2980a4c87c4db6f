// Package seed loads starting patterns for the simulation from text files.
// Every loader produces a rectangular core.Grid; ragged input rows are
// right-padded with dead cells.
package seed

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/vovakirdan/termlife/internal/core"
)

var (
	// ErrEmptySeed is returned when a pattern has no rows or no columns.
	ErrEmptySeed = errors.New("seed: pattern is empty")

	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("seed: unsupported file format")
)

// maxLineLength bounds a single pattern row.
const maxLineLength = 1 << 20

// Pattern is a loaded starting pattern.
type Pattern struct {
	Name        string
	Description string
	Grid        *core.Grid
	Source      string // File path, or "builtin:<id>" for registered patterns
}

// deadFunc reports whether a rune denotes a dead cell.
type deadFunc func(r rune) bool

// blankOnly treats whitespace as dead and everything else as alive.
func blankOnly(r rune) bool {
	return unicode.IsSpace(r)
}

// blankOrDot also treats '.' as dead, as in plaintext Life files.
func blankOrDot(r rune) bool {
	return r == '.' || unicode.IsSpace(r)
}

// Parse reads a plain text pattern: one row per line, any non-whitespace
// character is a live cell.
func Parse(r io.Reader) (*core.Grid, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return fromLines(lines, blankOnly)
}

// ParseString is Parse for an in-memory pattern.
func ParseString(s string) (*core.Grid, error) {
	return Parse(strings.NewReader(s))
}

// readLines splits r into lines.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// FromLines converts text rows into a grid. Whitespace is dead and any
// other character is alive.
func FromLines(lines []string) (*core.Grid, error) {
	return fromLines(lines, blankOnly)
}

// FromDots is FromLines with '.' also read as a dead cell.
func FromDots(lines []string) (*core.Grid, error) {
	return fromLines(lines, blankOrDot)
}

// fromLines pads short rows with dead cells up to the longest row.
func fromLines(lines []string, dead deadFunc) (*core.Grid, error) {
	width := 0
	runes := make([][]rune, len(lines))
	for i, line := range lines {
		runes[i] = []rune(strings.TrimRight(line, "\r"))
		if len(runes[i]) > width {
			width = len(runes[i])
		}
	}
	if len(lines) == 0 || width == 0 {
		return nil, ErrEmptySeed
	}

	rows := make([][]core.Cell, len(runes))
	for r, line := range runes {
		rows[r] = make([]core.Cell, width)
		for c, ch := range line {
			if !dead(ch) {
				rows[r][c] = core.Alive
			}
		}
	}
	return core.FromRows(rows)
}

// parsePlain parses plain text data.
func parsePlain(data []byte) (Pattern, error) {
	g, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Grid: g}, nil
}

// parseCells parses the plaintext Life format: '!' lines are comments
// ("!Name: ..." sets the pattern name) and '.' is a dead cell.
func parseCells(data []byte) (Pattern, error) {
	var p Pattern
	lines, err := readLines(bytes.NewReader(data))
	if err != nil {
		return p, err
	}

	var body []string
	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, "!"); ok {
			if name, ok := strings.CutPrefix(rest, "Name:"); ok {
				p.Name = strings.TrimSpace(name)
			} else if p.Description == "" {
				p.Description = strings.TrimSpace(rest)
			}
			continue
		}
		body = append(body, line)
	}

	p.Grid, err = FromDots(body)
	return p, err
}
