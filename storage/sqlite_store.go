// Package storage persists the run history: one row per completed report
// run, so operators can see when each period was processed and what the
// comparison found.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one completed report run.
type Run struct {
	ID             int64
	RanAt          time.Time
	RangeStart     time.Time
	RangeEnd       time.Time
	FormattedRange string
	GSNFile        string
	ERFile         string
	GSNCount       int
	ERCount        int
	ADCount        int
	MissingInER    int
	MissingInGSN   int
	Worksheet      string
	DurationMS     int64
}

type SQLiteStore struct {
	db *sql.DB
}

var ErrRunNotFound = errors.New("run not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ran_at TEXT NOT NULL,
	range_start TEXT NOT NULL,
	range_end TEXT NOT NULL,
	formatted_range TEXT NOT NULL,
	gsn_file TEXT NOT NULL,
	er_file TEXT NOT NULL,
	gsn_count INTEGER NOT NULL CHECK(gsn_count >= 0),
	er_count INTEGER NOT NULL CHECK(er_count >= 0),
	ad_count INTEGER NOT NULL CHECK(ad_count >= 0),
	missing_in_er INTEGER NOT NULL,
	missing_in_gsn INTEGER NOT NULL,
	worksheet TEXT NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertRun records one completed run and returns the new row ID.
func (s *SQLiteStore) InsertRun(run Run) (int64, error) {
	const insertStmt = `
INSERT INTO runs (
	ran_at,
	range_start,
	range_end,
	formatted_range,
	gsn_file,
	er_file,
	gsn_count,
	er_count,
	ad_count,
	missing_in_er,
	missing_in_gsn,
	worksheet,
	duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.Exec(
		insertStmt,
		run.RanAt.Format(time.RFC3339),
		run.RangeStart.Format(time.RFC3339),
		run.RangeEnd.Format(time.RFC3339),
		run.FormattedRange,
		run.GSNFile,
		run.ERFile,
		run.GSNCount,
		run.ERCount,
		run.ADCount,
		run.MissingInER,
		run.MissingInGSN,
		run.Worksheet,
		run.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}
	return id, nil
}

// ListRuns returns all recorded runs, newest first.
func (s *SQLiteStore) ListRuns() ([]Run, error) {
	const query = `
SELECT
	id,
	ran_at,
	range_start,
	range_end,
	formatted_range,
	gsn_file,
	er_file,
	gsn_count,
	er_count,
	ad_count,
	missing_in_er,
	missing_in_gsn,
	worksheet,
	duration_ms
FROM runs
ORDER BY ran_at DESC, id DESC;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, 32)
	for rows.Next() {
		var (
			run      Run
			ranRaw   string
			startRaw string
			endRaw   string
		)

		if err := rows.Scan(
			&run.ID,
			&ranRaw,
			&startRaw,
			&endRaw,
			&run.FormattedRange,
			&run.GSNFile,
			&run.ERFile,
			&run.GSNCount,
			&run.ERCount,
			&run.ADCount,
			&run.MissingInER,
			&run.MissingInGSN,
			&run.Worksheet,
			&run.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.RanAt, err = time.Parse(time.RFC3339, ranRaw)
		if err != nil {
			return nil, fmt.Errorf("parse ran_at %q: %w", ranRaw, err)
		}
		run.RangeStart, err = time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return nil, fmt.Errorf("parse range_start %q: %w", startRaw, err)
		}
		run.RangeEnd, err = time.Parse(time.RFC3339, endRaw)
		if err != nil {
			return nil, fmt.Errorf("parse range_end %q: %w", endRaw, err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRunByID returns one run by ID.
func (s *SQLiteStore) GetRunByID(id int64) (Run, error) {
	if id <= 0 {
		return Run{}, fmt.Errorf("run id must be > 0")
	}

	const query = `
SELECT
	id,
	ran_at,
	range_start,
	range_end,
	formatted_range,
	gsn_file,
	er_file,
	gsn_count,
	er_count,
	ad_count,
	missing_in_er,
	missing_in_gsn,
	worksheet,
	duration_ms
FROM runs
WHERE id = ?;
`

	var (
		run      Run
		ranRaw   string
		startRaw string
		endRaw   string
	)

	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&ranRaw,
		&startRaw,
		&endRaw,
		&run.FormattedRange,
		&run.GSNFile,
		&run.ERFile,
		&run.GSNCount,
		&run.ERCount,
		&run.ADCount,
		&run.MissingInER,
		&run.MissingInGSN,
		&run.Worksheet,
		&run.DurationMS,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, fmt.Errorf("query run %d: %w", id, err)
	}

	run.RanAt, err = time.Parse(time.RFC3339, ranRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse ran_at %q: %w", ranRaw, err)
	}
	run.RangeStart, err = time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse range_start %q: %w", startRaw, err)
	}
	run.RangeEnd, err = time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse range_end %q: %w", endRaw, err)
	}

	return run, nil
}

// DeleteAllRuns clears the history and returns the number of deleted rows.
func (s *SQLiteStore) DeleteAllRuns() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM runs;`)
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}
