// Package history records run metadata and per step diagnostics of the
// demo driver in a SQLite file, using the pure Go modernc.org/sqlite driver.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

type Run struct {
	ID        int64
	Title     string
	Problem   string
	Nx, Ny    int
	EOS       string
	Steps     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// StepRecord holds interior integrals and extrema after a step
type StepRecord struct {
	RunID          int64
	Step           int
	Time, Dt       float64
	Mass, Energy   float64
	RhoMin, RhoMax float64
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed
func Open(path string) (s *Store, err error) {
	if dir := filepath.Dir(path); len(dir) != 0 {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: cannot create directory %s: %w", dir, err)
		}
	}
	var db *sql.DB
	if db, err = sql.Open("sqlite", path); err != nil {
		return nil, fmt.Errorf("history: cannot open %s: %w", path, err)
	}
	// One writer, the driver loop
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: cannot connect to %s: %w", path, err)
	}
	s = &Store{db: db}
	if err = s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}
	return
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			problem TEXT NOT NULL,
			nx INTEGER NOT NULL,
			ny INTEGER NOT NULL,
			eos TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			elapsed_ns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS steps (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			step INTEGER NOT NULL,
			time REAL NOT NULL,
			dt REAL NOT NULL,
			mass REAL NOT NULL,
			energy REAL NOT NULL,
			rho_min REAL NOT NULL,
			rho_max REAL NOT NULL,
			PRIMARY KEY (run_id, step)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) StartRun(title, problem string, nx, ny int, eosName string) (id int64, err error) {
	var res sql.Result
	if res, err = s.db.Exec(
		"INSERT INTO runs (title, problem, nx, ny, eos) VALUES (?, ?, ?, ?, ?)",
		title, problem, nx, ny, eosName); err != nil {
		return 0, fmt.Errorf("history: cannot start run: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) FinishRun(id int64, steps int, elapsed time.Duration) (err error) {
	if _, err = s.db.Exec("UPDATE runs SET steps = ?, elapsed_ns = ? WHERE id = ?",
		steps, elapsed.Nanoseconds(), id); err != nil {
		err = fmt.Errorf("history: cannot finish run %d: %w", id, err)
	}
	return
}

func (s *Store) RecordStep(r StepRecord) (err error) {
	if _, err = s.db.Exec(
		"INSERT INTO steps (run_id, step, time, dt, mass, energy, rho_min, rho_max) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		r.RunID, r.Step, r.Time, r.Dt, r.Mass, r.Energy, r.RhoMin, r.RhoMax); err != nil {
		err = fmt.Errorf("history: cannot record step %d of run %d: %w", r.Step, r.RunID, err)
	}
	return
}

func (s *Store) GetRun(id int64) (r Run, err error) {
	var (
		elapsed   int64
		createdAt any
	)
	row := s.db.QueryRow(
		"SELECT id, title, problem, nx, ny, eos, steps, elapsed_ns, created_at FROM runs WHERE id = ?", id)
	if err = row.Scan(&r.ID, &r.Title, &r.Problem, &r.Nx, &r.Ny, &r.EOS, &r.Steps, &elapsed, &createdAt); err != nil {
		return r, fmt.Errorf("history: cannot read run %d: %w", id, err)
	}
	r.Elapsed = time.Duration(elapsed)
	// The driver hands back either a time or the stored text
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		r.CreatedAt, _ = time.Parse(time.DateTime, v)
	}
	return
}

// Steps returns the records of a run in step order
func (s *Store) Steps(id int64) (recs []StepRecord, err error) {
	var rows *sql.Rows
	if rows, err = s.db.Query(
		"SELECT run_id, step, time, dt, mass, energy, rho_min, rho_max FROM steps WHERE run_id = ? ORDER BY step",
		id); err != nil {
		return nil, fmt.Errorf("history: cannot query steps of run %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var r StepRecord
		if err = rows.Scan(&r.RunID, &r.Step, &r.Time, &r.Dt, &r.Mass, &r.Energy, &r.RhoMin, &r.RhoMax); err != nil {
			return nil, fmt.Errorf("history: cannot scan step: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
