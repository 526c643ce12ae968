// ABOUTME: SQLite-backed store of completed analysis runs for the history command.
// ABOUTME: Saves the submitted code alongside the reconciled report JSON; reads never block a live run.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/algoscope/algoscope/report"
)

// Run is one saved analysis run.
type Run struct {
	RunID      string
	AnalysisID string
	Code       string
	Report     *report.AnalysisReport
	CreatedAt  time.Time
}

// RunSummary is a row for list queries, without the code and report bodies.
type RunSummary struct {
	RunID      string
	AnalysisID string
	TimeBound  string
	Verdict    string
	CreatedAt  time.Time
}

// Store is a SQLite-backed run archive. It is a convenience record of past
// runs, not a source of truth; deleting the file loses nothing but history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			analysis_id TEXT NOT NULL,
			code TEXT NOT NULL,
			report_json TEXT NOT NULL,
			time_bound TEXT NOT NULL,
			verdict TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a completed run and returns its generated run ID.
func (s *Store) Save(analysisID, code string, rep *report.AnalysisReport) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("cannot save a run without a report")
	}

	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	runID := ulid.Make().String()
	_, err = s.db.Exec(
		`INSERT INTO runs (run_id, analysis_id, code, report_json, time_bound, verdict, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		analysisID,
		code,
		string(reportJSON),
		rep.Complexity.Time.Display(),
		rep.Validation.Verdict(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// List returns summaries of the most recent runs, newest first.
func (s *Store) List(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT run_id, analysis_id, time_bound, verdict, created_at
		 FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt string
		if err := rows.Scan(&r.RunID, &r.AnalysisID, &r.TimeBound, &r.Verdict, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get loads one saved run by run ID.
func (s *Store) Get(runID string) (*Run, error) {
	var r Run
	var reportJSON, createdAt string
	err := s.db.QueryRow(
		`SELECT run_id, analysis_id, code, report_json, created_at FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&r.RunID, &r.AnalysisID, &r.Code, &reportJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	r.Report = &report.AnalysisReport{}
	if err := json.Unmarshal([]byte(reportJSON), r.Report); err != nil {
		return nil, fmt.Errorf("decode stored report: %w", err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}
