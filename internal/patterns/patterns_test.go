package patterns

import (
	"testing"

	"github.com/vovakirdan/termlife/internal/core"
	"github.com/vovakirdan/termlife/internal/registry"
	"github.com/vovakirdan/termlife/internal/seed"
)

func createPadded(t *testing.T, id string, pad int) *core.Grid {
	t.Helper()
	p, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	p, err = p.Embed(p.Grid.Height()+2*pad, p.Grid.Width()+2*pad, core.AlignCenter)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	return p.Grid
}

func newEngine(t *testing.T, g *core.Grid, workers int) *core.Engine {
	t.Helper()
	e, err := core.NewEngine(g, core.WithWorkers(workers))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestBuiltinsRegistered(t *testing.T) {
	tests := []struct {
		id    string
		alive int
	}{
		{"block", 4},
		{"beehive", 6},
		{"blinker", 3},
		{"toad", 6},
		{"beacon", 8},
		{"pulsar", 48},
		{"glider", 5},
		{"lwss", 9},
		{"r-pentomino", 5},
		{"diehard", 7},
		{"acorn", 7},
		{"gosper-gun", 36},
	}

	for _, tc := range tests {
		p, err := registry.Create(tc.id)
		if err != nil {
			t.Errorf("Create(%q) failed: %v", tc.id, err)
			continue
		}
		if p.Name == "" {
			t.Errorf("%s: missing name", tc.id)
		}
		if got := p.Grid.Alive(); got != tc.alive {
			t.Errorf("%s: got %d live cells, expected %d", tc.id, got, tc.alive)
		}
	}
}

func TestStillLifes(t *testing.T) {
	for _, id := range []string{"block", "beehive"} {
		e := newEngine(t, createPadded(t, id, 2), 2)
		if e.Step() {
			t.Errorf("%s should not change", id)
		}
		if !e.Converged() {
			t.Errorf("%s should converge immediately", id)
		}
	}
}

func TestOscillators(t *testing.T) {
	tests := []struct {
		id     string
		period int
	}{
		{"blinker", 2},
		{"toad", 2},
		{"beacon", 2},
		{"pulsar", 3},
	}

	for _, tc := range tests {
		start := createPadded(t, tc.id, 3)
		e := newEngine(t, start.Clone(), 3)

		for i := 0; i < tc.period; i++ {
			if !e.Step() {
				t.Fatalf("%s: step %d should change the grid", tc.id, i+1)
			}
			if i < tc.period-1 && e.Current().Equal(start) {
				t.Fatalf("%s: returned to start after %d steps, expected period %d", tc.id, i+1, tc.period)
			}
		}
		if !e.Current().Equal(start) {
			t.Errorf("%s: not back to start after %d steps:\n%s", tc.id, tc.period, e.Current())
		}
	}
}

func TestGliderTranslates(t *testing.T) {
	glider, err := registry.Create("glider")
	if err != nil {
		t.Fatal(err)
	}

	// Centered in 10x10 the glider's box starts at (4,4); four generations
	// later it has moved one cell down and one right.
	start, _ := glider.Embed(10, 10, core.AlignCenter)
	e := newEngine(t, start.Grid, 4)
	for i := 0; i < 4; i++ {
		e.Step()
	}

	shifted, err := seed.FromDots([]string{
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"......O...",
		".......O..",
		".....OOO..",
		"..........",
		"..........",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !e.Current().Equal(shifted) {
		t.Errorf("got\n%s\nexpected\n%s", e.Current(), shifted)
	}
}
