// Package patterns registers the built-in seed patterns.
// Rows use '.' for dead cells and 'O' for live ones.
package patterns

import (
	"github.com/vovakirdan/termlife/internal/registry"
	"github.com/vovakirdan/termlife/internal/seed"
)

func init() {
	for _, d := range builtins {
		registry.Register(d.id, d.factory())
	}
}

// definition is a pattern known at compile time.
type definition struct {
	id          string
	name        string
	description string
	rows        []string
}

func (d definition) factory() registry.Factory {
	return func() (seed.Pattern, error) {
		g, err := seed.FromDots(d.rows)
		if err != nil {
			return seed.Pattern{}, err
		}
		return seed.Pattern{
			Name:        d.name,
			Description: d.description,
			Grid:        g,
		}, nil
	}
}

var builtins = []definition{
	{
		id:          "block",
		name:        "Block",
		description: "Smallest still life",
		rows:        []string{"OO", "OO"},
	},
	{
		id:          "beehive",
		name:        "Beehive",
		description: "Common six-cell still life",
		rows: []string{
			".OO.",
			"O..O",
			".OO.",
		},
	},
	{
		id:          "blinker",
		name:        "Blinker",
		description: "Period 2 oscillator",
		rows:        []string{"OOO"},
	},
	{
		id:          "toad",
		name:        "Toad",
		description: "Period 2 oscillator",
		rows: []string{
			".OOO",
			"OOO.",
		},
	},
	{
		id:          "beacon",
		name:        "Beacon",
		description: "Period 2 oscillator made of two blocks",
		rows: []string{
			"OO..",
			"OO..",
			"..OO",
			"..OO",
		},
	},
	{
		id:          "pulsar",
		name:        "Pulsar",
		description: "Period 3 oscillator",
		rows: []string{
			"..OOO...OOO..",
			".............",
			"O....O.O....O",
			"O....O.O....O",
			"O....O.O....O",
			"..OOO...OOO..",
			".............",
			"..OOO...OOO..",
			"O....O.O....O",
			"O....O.O....O",
			"O....O.O....O",
			".............",
			"..OOO...OOO..",
		},
	},
	{
		id:          "glider",
		name:        "Glider",
		description: "Smallest spaceship, moves diagonally every 4 generations",
		rows: []string{
			".O.",
			"..O",
			"OOO",
		},
	},
	{
		id:          "lwss",
		name:        "Lightweight spaceship",
		description: "Orthogonal spaceship with period 4",
		rows: []string{
			".O..O",
			"O....",
			"O...O",
			"OOOO.",
		},
	},
	{
		id:          "r-pentomino",
		name:        "R-pentomino",
		description: "Methuselah that stabilises after 1103 generations",
		rows: []string{
			".OO",
			"OO.",
			".O.",
		},
	},
	{
		id:          "diehard",
		name:        "Diehard",
		description: "Methuselah that vanishes after 130 generations",
		rows: []string{
			"......O.",
			"OO......",
			".O...OOO",
		},
	},
	{
		id:          "acorn",
		name:        "Acorn",
		description: "Methuselah that takes 5206 generations to stabilise",
		rows: []string{
			".O.....",
			"...O...",
			"OO..OOO",
		},
	},
	{
		id:          "gosper-gun",
		name:        "Gosper glider gun",
		description: "Emits a glider every 30 generations",
		rows: []string{
			"........................O...........",
			"......................O.O...........",
			"............OO......OO............OO",
			"...........O...O....OO............OO",
			"OO........O.....O...OO..............",
			"OO........O...O.OO....O.O...........",
			"..........O.....O.......O...........",
			"...........O...O....................",
			"............OO......................",
		},
	},
}
