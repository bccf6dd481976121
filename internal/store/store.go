// Package store handles SQLite persistence of conversion runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/sensearff/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			corpus_path TEXT NOT NULL,
			stoplist_path TEXT NOT NULL,
			window_size INTEGER NOT NULL,
			relation TEXT NOT NULL,
			not_found TEXT NOT NULL,
			samples INTEGER NOT NULL,
			entries INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_domains (
			run_id INTEGER NOT NULL,
			slot INTEGER NOT NULL,
			kind TEXT NOT NULL,
			size INTEGER NOT NULL,
			PRIMARY KEY (run_id, slot, kind)
		);`,
		`CREATE TABLE IF NOT EXISTS run_senses (
			run_id INTEGER NOT NULL,
			sense INTEGER NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, sense)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed run with its domain sizes and sense counts.
func (s *Store) InsertRun(ctx context.Context, run model.RunStats, domains []model.DomainSize, senses []model.SenseCount) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, corpus_path, stoplist_path, window_size, relation, not_found, samples, entries, skipped, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.CorpusPath,
		run.StopListPath,
		run.Window,
		run.Relation,
		run.NotFound,
		run.Samples,
		run.Entries,
		run.Skipped,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, d := range domains {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO run_domains (run_id, slot, kind, size) VALUES (?, ?, ?, ?)`,
			id, d.Slot, d.Kind, d.Size); err != nil {
			return 0, err
		}
	}
	for _, sc := range senses {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO run_senses (run_id, sense, count) VALUES (?, ?, ?)`,
			id, sc.Sense, sc.Count); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns recorded runs oldest first, limited to the last n when n > 0.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunAggregate, error) {
	query := `SELECT id, ended_at, corpus_path, window_size, samples, entries, skipped, duration_ms
		FROM (
			SELECT * FROM runs
			ORDER BY ended_at DESC, id DESC
			LIMIT ?
		)
		ORDER BY ended_at ASC, id ASC`
	limit := last
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var endedAt string
		if err := rows.Scan(&agg.RunID, &endedAt, &agg.CorpusPath, &agg.Window, &agg.Samples, &agg.Entries, &agg.Skipped, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun returns a single recorded run.
func (s *Store) GetRun(ctx context.Context, id int64) (model.RunAggregate, error) {
	var agg model.RunAggregate
	var endedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, ended_at, corpus_path, window_size, samples, entries, skipped, duration_ms
		FROM runs WHERE id = ?`, id).
		Scan(&agg.RunID, &endedAt, &agg.CorpusPath, &agg.Window, &agg.Samples, &agg.Entries, &agg.Skipped, &agg.DurationMs)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RunAggregate{}, ErrRunNotFound
	}
	if err != nil {
		return model.RunAggregate{}, err
	}
	agg.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt)
	if err != nil {
		return model.RunAggregate{}, err
	}
	return agg, nil
}

// ListDomainSizes returns the attribute domain sizes recorded for a run.
func (s *Store) ListDomainSizes(ctx context.Context, runID int64) ([]model.DomainSize, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, kind, size FROM run_domains WHERE run_id = ? ORDER BY slot ASC, kind DESC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.DomainSize
	for rows.Next() {
		var d model.DomainSize
		if err := rows.Scan(&d.Slot, &d.Kind, &d.Size); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListSenseCounts returns the sense distribution recorded for a run.
func (s *Store) ListSenseCounts(ctx context.Context, runID int64) ([]model.SenseCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sense, count FROM run_senses WHERE run_id = ? ORDER BY sense ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SenseCount
	for rows.Next() {
		var sc model.SenseCount
		if err := rows.Scan(&sc.Sense, &sc.Count); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
