// Package storage provides SQLite-based persistence for run results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry represents one recorded attempt at a puzzle. Steps counts every
// accepted move of the attempt, undos included, so lower is better.
type RunEntry struct {
	ID         int64
	RunID      string // uuid assigned by the driver when the run is saved
	PuzzleID   string // puzzle fingerprint
	Algorithm  string
	Width      int
	Height     int
	SkillTier  string
	Difficulty string
	Steps      int
	Optimal    int
	HintsUsed  int
	SlicesUsed int
	Completed  bool
	DurationMS int64
	CreatedAt  time.Time
}

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
			run_id TEXT NOT NULL UNIQUE,
			puzzle_id TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			skill_tier TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL,
			optimal INTEGER NOT NULL,
			hints_used INTEGER NOT NULL DEFAULT 0,
			slices_used INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_puzzle ON runs(puzzle_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(puzzle_id, steps ASC);
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

const runColumns = `id, run_id, puzzle_id, algorithm, width, height,
	skill_tier, difficulty, steps, optimal, hints_used, slices_used,
	completed, duration_ms, created_at`

// SaveRun records one attempt. Returns the ID of the inserted row.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, puzzle_id, algorithm, width, height, skill_tier, difficulty,
		  steps, optimal, hints_used, slices_used, completed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.PuzzleID, e.Algorithm, e.Width, e.Height, e.SkillTier, e.Difficulty,
		e.Steps, e.Optimal, e.HintsUsed, e.SlicesUsed, e.Completed, e.DurationMS,
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

// BestRun returns the completed run with the fewest steps for a puzzle,
// or nil when the puzzle has never been solved.
func (s *Store) BestRun(puzzleID string) (*RunEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE puzzle_id = ? AND completed = 1
		 ORDER BY steps ASC, created_at ASC
		 LIMIT 1`,
		puzzleID,
	)

	e, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return e, nil
}

// RecentRuns retrieves the most recent runs across all puzzles.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
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
	defer rows.Close()

	return collectRuns(rows)
}

// RunsForPuzzle retrieves runs for one puzzle, best first.
func (s *Store) RunsForPuzzle(puzzleID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE puzzle_id = ?
		 ORDER BY completed DESC, steps ASC, created_at ASC
		 LIMIT ?`,
		puzzleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// ClearRuns deletes all runs for the given puzzle.
func (s *Store) ClearRuns(puzzleID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE puzzle_id = ?", puzzleID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PuzzleStats contains aggregated statistics for one puzzle.
type PuzzleStats struct {
	PuzzleID   string
	Attempts   int
	Solved     int
	BestSteps  int // 0 when never solved
	AvgSteps   float64
	LastPlayed time.Time
}

// GetPuzzleStats retrieves aggregated statistics for a specific puzzle.
func (s *Store) GetPuzzleStats(puzzleID string) (*PuzzleStats, error) {
	stats := &PuzzleStats{PuzzleID: puzzleID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        COALESCE(MIN(CASE WHEN completed = 1 THEN steps END), 0),
		        COALESCE(AVG(steps), 0)
		 FROM runs WHERE puzzle_id = ?`,
		puzzleID,
	).Scan(&stats.Attempts, &stats.Solved, &stats.BestSteps, &stats.AvgSteps)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get puzzle stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE puzzle_id = ? ORDER BY created_at DESC LIMIT 1`,
		puzzleID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// GetAllPuzzleStats retrieves statistics for every puzzle that has runs.
func (s *Store) GetAllPuzzleStats() (map[string]*PuzzleStats, error) {
	rows, err := s.db.Query(
		`SELECT puzzle_id,
		        COUNT(*),
		        COALESCE(SUM(completed), 0),
		        COALESCE(MIN(CASE WHEN completed = 1 THEN steps END), 0),
		        COALESCE(AVG(steps), 0),
		        MAX(created_at)
		 FROM runs
		 GROUP BY puzzle_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all puzzle stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PuzzleStats)
	for rows.Next() {
		var ps PuzzleStats
		var lastPlayed any
		if err := rows.Scan(&ps.PuzzleID, &ps.Attempts, &ps.Solved, &ps.BestSteps, &ps.AvgSteps, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseCreatedAt(lastPlayed)
		stats[ps.PuzzleID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(src scanner) (*RunEntry, error) {
	var e RunEntry
	var createdAt any
	if err := src.Scan(
		&e.ID, &e.RunID, &e.PuzzleID, &e.Algorithm, &e.Width, &e.Height,
		&e.SkillTier, &e.Difficulty, &e.Steps, &e.Optimal, &e.HintsUsed, &e.SlicesUsed,
		&e.Completed, &e.DurationMS, &createdAt,
	); err != nil {
		return nil, err
	}
	e.CreatedAt = parseCreatedAt(createdAt)
	return &e, nil
}

func collectRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseCreatedAt handles the datetime coming back as either time.Time or a
// string, depending on how the row was written.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
