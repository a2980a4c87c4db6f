package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		Seed:        "builtin:glider",
		Height:      24,
		Width:       24,
		Workers:     4,
		Scheduler:   "pool",
		Generations: 92,
		Converged:   true,
		AvgStep:     1500 * time.Microsecond,
		User:        "alice",
	}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for saved run")
	}

	run.ID = id
	run.CreatedAt = got.CreatedAt
	if *got != run {
		t.Errorf("got %+v, expected %+v", *got, run)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	missing, err := store.RunByID(id + 100)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing run, got %+v", missing)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Seed: "a.txt", Height: 10, Width: 10, Workers: 1, Scheduler: "spawn", Generations: i})
	}
	store.SaveRun(Run{Seed: "b.txt", Height: 10, Width: 10, Workers: 1, Scheduler: "spawn", Generations: 99})

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first; rows inserted within the same second are ordered by ID.
	if runs[0].Seed != "b.txt" || runs[1].Generations != 4 || runs[2].Generations != 3 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected default limit to return all 6 runs, got %d", len(all))
	}
}

func TestStoreRunsForSeed(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Seed: "a.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn"})
	store.SaveRun(Run{Seed: "b.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn"})
	store.SaveRun(Run{Seed: "a.txt", Height: 5, Width: 5, Workers: 2, Scheduler: "pool"})

	runs, err := store.RunsForSeed("a.txt", 10)
	if err != nil {
		t.Fatalf("RunsForSeed() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Seed != "a.txt" {
			t.Errorf("Unexpected seed %q", r.Seed)
		}
	}

	none, err := store.RunsForSeed("missing", 10)
	if err != nil {
		t.Fatalf("RunsForSeed() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no runs, got %d", len(none))
	}
}

func TestStoreSeedStats(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	stats, err := store.SeedStats("a.txt")
	if err != nil {
		t.Fatalf("SeedStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastRun.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(Run{Seed: "a.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn", Generations: 10, Converged: true})
	store.SaveRun(Run{Seed: "a.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn", Generations: 30})
	store.SaveRun(Run{Seed: "b.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn", Generations: 500})

	stats, err = store.SeedStats("a.txt")
	if err != nil {
		t.Fatalf("SeedStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.ConvergedRuns != 1 {
		t.Errorf("Expected 2 runs with 1 converged, got %+v", stats)
	}
	if stats.MaxGenerations != 30 || stats.AvgGenerations != 20 {
		t.Errorf("Unexpected generation stats: %+v", stats)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun should be set")
	}

	all, err := store.AllSeedStats()
	if err != nil {
		t.Fatalf("AllSeedStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 seeds, got %d", len(all))
	}
	if all["b.txt"].MaxGenerations != 500 || all["a.txt"].Runs != 2 {
		t.Errorf("Unexpected aggregated stats: a=%+v b=%+v", all["a.txt"], all["b.txt"])
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Seed: "a.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn"})
	store.SaveRun(Run{Seed: "a.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn"})
	store.SaveRun(Run{Seed: "b.txt", Height: 5, Width: 5, Workers: 1, Scheduler: "spawn"})

	// Clear only a.txt runs
	if err := store.ClearRuns("a.txt"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	aRuns, _ := store.RunsForSeed("a.txt", 10)
	if len(aRuns) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(aRuns))
	}

	bRuns, _ := store.RunsForSeed("b.txt", 10)
	if len(bRuns) != 1 {
		t.Errorf("b.txt runs should not be affected by clearing a.txt")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.termlife/runs.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".termlife", "runs.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
