package registry

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/termlife/internal/seed"
)

func dotsFactory(name string, rows ...string) Factory {
	return func() (seed.Pattern, error) {
		g, err := seed.FromDots(rows)
		if err != nil {
			return seed.Pattern{}, err
		}
		return seed.Pattern{Name: name, Grid: g}, nil
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-block", dotsFactory("Test Block", "##", "##"))

	if !Exists("test-block") {
		t.Fatal("test-block should exist after Register")
	}

	p, err := Create("test-block")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name != "Test Block" || p.Grid.Alive() != 4 {
		t.Errorf("unexpected pattern: %s\n%s", p.Name, p.Grid)
	}
	if p.Source != "builtin:test-block" {
		t.Errorf("Source = %q, expected builtin:test-block", p.Source)
	}

	// Each Create returns an independent grid.
	q, _ := Create("test-block")
	q.Grid.Clear()
	if p.Grid.Alive() != 4 {
		t.Error("instances must not share storage")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", dotsFactory("Dup", "#"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test-dup", dotsFactory("Dup", "#"))
}

func TestRegisterInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an empty pattern")
		}
	}()
	Register("test-empty", dotsFactory("Empty"))
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-pattern"); err == nil {
		t.Error("expected error for unknown pattern")
	}
	if Exists("no-such-pattern") {
		t.Error("unknown pattern should not exist")
	}
}

func TestListSorted(t *testing.T) {
	Register("test-z", dotsFactory("Z", ".#.", "###"))
	Register("test-a", dotsFactory("A", "#"))

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("list not sorted: %s >= %s", list[i-1].ID, list[i].ID)
		}
	}

	found := false
	for _, info := range list {
		if info.ID == "test-z" {
			found = true
			if info.Title != "Z" || info.Height != 2 || info.Width != 3 {
				t.Errorf("unexpected info: %+v", info)
			}
		}
	}
	if !found {
		t.Error("test-z missing from List()")
	}
}

func TestResolve(t *testing.T) {
	Register("test-resolve", dotsFactory("Resolve", "##"))

	p, err := Resolve("test-resolve")
	if err != nil {
		t.Fatalf("Resolve(builtin) failed: %v", err)
	}
	if p.Source != "builtin:test-resolve" {
		t.Errorf("Source = %q, expected builtin:test-resolve", p.Source)
	}

	path := filepath.Join(t.TempDir(), "line.txt")
	if err := os.WriteFile(path, []byte("###\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err = Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(file) failed: %v", err)
	}
	if p.Source != path || p.Grid.Alive() != 3 {
		t.Errorf("unexpected pattern from file: %+v", p)
	}

	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist for missing file, got %v", err)
	}
}
