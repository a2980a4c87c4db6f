package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/termlife/internal/core"
)

// parser turns raw file contents into a pattern.
type parser func(data []byte) (Pattern, error)

// parsers routes file extensions to their format.
var parsers = map[string]parser{
	"":       parsePlain,
	".txt":   parsePlain,
	".cells": parseCells,
	".yaml":  parseYAML,
	".yml":   parseYAML,
}

// FormatExtensions returns supported file extensions, sorted.
func FormatExtensions() []string {
	return []string{"", ".cells", ".txt", ".yaml", ".yml"}
}

// Load reads a pattern file, choosing the format by extension. Unknown
// extensions are read as plain text. A missing file yields an error that
// wraps fs.ErrNotExist.
func Load(path string) (Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pattern{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := parsers[ext]
	if !ok {
		parse = parsePlain
	}

	p, err := parse(data)
	if err != nil {
		return Pattern{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p.Source = path
	return p, nil
}

// ParseFormat parses data using the format for the given extension.
func ParseFormat(data []byte, ext string) (Pattern, error) {
	parse, ok := parsers[strings.ToLower(ext)]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return parse(data)
}

// LoadInto loads a pattern and embeds it in a height x width canvas.
func LoadInto(path string, height, width int, align core.Alignment) (Pattern, error) {
	p, err := Load(path)
	if err != nil {
		return Pattern{}, err
	}
	return p.Embed(height, width, align)
}

// Embed returns a copy of the pattern placed in a height x width canvas.
func (p Pattern) Embed(height, width int, align core.Alignment) (Pattern, error) {
	g, err := core.Embed(height, width, p.Grid, align)
	if err != nil {
		return Pattern{}, err
	}
	p.Grid = g
	return p, nil
}

// LoadDir recursively loads every supported pattern file under root.
// Files that fail to parse are skipped. Patterns are sorted by name.
func LoadDir(root string) ([]Pattern, error) {
	var patterns []Pattern

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// Extensionless files are only read when named explicitly.
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := parsers[ext]; !ok || ext == "" {
			return nil
		}

		p, err := Load(path)
		if err != nil {
			return nil
		}
		patterns = append(patterns, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", root, err)
	}

	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].Name < patterns[j].Name
	})
	return patterns, nil
}
