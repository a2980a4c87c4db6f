// Package storage provides SQLite-based persistence for simulation run
// history. It records what was run and how it ended, never the grids
// themselves. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single recorded simulation.
type Run struct {
	ID          int64
	Seed        string // Pattern file path or "builtin:<id>"
	Height      int
	Width       int
	Workers     int
	Scheduler   string
	Generations int
	Converged   bool
	AvgStep     time.Duration
	User        string // SSH user, empty for local runs
	CreatedAt   time.Time
}

// SeedStats contains aggregated statistics for one seed.
type SeedStats struct {
	Seed           string
	Runs           int
	ConvergedRuns  int
	MaxGenerations int
	AvgGenerations float64
	LastRun        time.Time
}

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed TEXT NOT NULL,
			height INTEGER NOT NULL,
			width INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			scheduler TEXT NOT NULL,
			generations INTEGER NOT NULL DEFAULT 0,
			converged INTEGER NOT NULL DEFAULT 0,
			avg_step_us INTEGER NOT NULL DEFAULT 0,
			user TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, height, width, workers, scheduler, generations, converged, avg_step_us, user)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed,
		run.Height,
		run.Width,
		run.Workers,
		run.Scheduler,
		run.Generations,
		boolToInt(run.Converged),
		run.AvgStep.Microseconds(),
		run.User,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, seed, height, width, workers, scheduler, generations,
	converged, avg_step_us, user, created_at`

// RecentRuns retrieves the most recent runs across all seeds.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsForSeed retrieves the most recent runs of one seed.
func (s *Store) RunsForSeed(seed string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE seed = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		seed, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID retrieves a single run. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

// scanRuns reads every row and closes rows.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var avgStepUS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Seed,
			&r.Height,
			&r.Width,
			&r.Workers,
			&r.Scheduler,
			&r.Generations,
			&r.Converged,
			&avgStepUS,
			&r.User,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.AvgStep = time.Duration(avgStepUS) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SeedStats retrieves aggregated statistics for a specific seed.
func (s *Store) SeedStats(seed string) (*SeedStats, error) {
	stats := &SeedStats{Seed: seed}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(converged), 0), COALESCE(MAX(generations), 0), COALESCE(AVG(generations), 0)
		 FROM runs WHERE seed = ?`,
		seed,
	).Scan(&stats.Runs, &stats.ConvergedRuns, &stats.MaxGenerations, &stats.AvgGenerations)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get seed stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE seed = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		seed,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// AllSeedStats retrieves statistics for every seed that has been run.
func (s *Store) AllSeedStats() (map[string]*SeedStats, error) {
	rows, err := s.db.Query(
		`SELECT seed, COUNT(*), SUM(converged), MAX(generations), AVG(generations), MAX(created_at)
		 FROM runs
		 GROUP BY seed`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all seed stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SeedStats)
	for rows.Next() {
		var st SeedStats
		var lastRun any
		if err := rows.Scan(&st.Seed, &st.Runs, &st.ConvergedRuns, &st.MaxGenerations, &st.AvgGenerations, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Seed] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs of the given seed.
func (s *Store) ClearRuns(seed string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE seed = ?", seed)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
