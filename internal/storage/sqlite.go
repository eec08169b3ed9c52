// Package storage keeps the ledger of finished runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The game opens it on an in-memory database, so the ledger lasts only as
// long as the process.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// RunRecord is a single finished run.
type RunRecord struct {
	ID        int64
	Mode      string
	Score     int
	TopSpeed  int
	Ticks     int
	Duration  time.Duration
	NewBest   bool
	CreatedAt time.Time
}

// Summary contains aggregated statistics over all recorded runs.
type Summary struct {
	Runs       int
	BestScore  int
	AvgScore   float64
	TotalTicks int64
	TotalTime  time.Duration
	ByMode     map[string]int
}

// Open opens the ledger. An empty dsn or MemoryDSN opens an in-memory
// database; anything else is a file path whose parent directories are
// created as needed.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	if dsn != MemoryDSN && !strings.HasPrefix(dsn, "file:") {
		// Expand ~ to home directory
		if dsn[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dsn = filepath.Join(home, dsn[1:])
		}

		// Create parent directories
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	// Open database
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			top_speed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			new_best INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
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

// RecordRun adds a finished run to the ledger.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (mode, score, top_speed, ticks, duration_ms, new_best)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Score, r.TopSpeed, r.Ticks, r.Duration.Milliseconds(), r.NewBest,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the N best runs, highest score first. Ties go to the
// earlier run.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	return s.queryRuns("ORDER BY score DESC, id ASC", limit)
}

// RecentRuns retrieves the N most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	return s.queryRuns("ORDER BY id DESC", limit)
}

func (s *Store) queryRuns(order string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, top_speed, ticks, duration_ms, new_best, created_at
		 FROM runs `+order+`
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Score, &r.TopSpeed, &r.Ticks, &durationMS, &r.NewBest, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Summary retrieves aggregated statistics for the ledger.
func (s *Store) Summary() (Summary, error) {
	sum := Summary{ByMode: make(map[string]int)}

	var totalMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(ticks), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs`,
	).Scan(&sum.Runs, &sum.BestScore, &sum.AvgScore, &sum.TotalTicks, &totalMS)
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot get summary: %w", err)
	}
	sum.TotalTime = time.Duration(totalMS) * time.Millisecond

	rows, err := s.db.Query(`SELECT mode, COUNT(*) FROM runs GROUP BY mode`)
	if err != nil {
		return Summary{}, fmt.Errorf("storage: cannot count modes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return Summary{}, fmt.Errorf("storage: cannot scan mode row: %w", err)
		}
		sum.ByMode[mode] = count
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sum, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
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
