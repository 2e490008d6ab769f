package results

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists sweep runs in a SQLite database so long experiments
// can be analyzed (and resumed) after the fact.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the run database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		initial_ribosomes INTEGER NOT NULL,
		excess_factor REAL NOT NULL,
		initial_chains_marking INTEGER NOT NULL,
		max_protein_output_goal INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		max_product INTEGER NOT NULL,
		final_marking TEXT NOT NULL,
		started_at TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_cell
		ON runs (initial_ribosomes, excess_factor);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts a run, assigning it an ID if it has none.
func (s *Store) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	marking, err := json.Marshal(run.FinalMarking)
	if err != nil {
		return fmt.Errorf("encode final marking: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO runs (
			id, initial_ribosomes, excess_factor, initial_chains_marking,
			max_protein_output_goal, seed, steps, max_product,
			final_marking, started_at, elapsed_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InitialRibosomes, run.ExcessFactor, run.InitialChainsMarking,
		run.MaxProteinOutputGoal, run.Seed, run.Steps, run.MaxProduct,
		string(marking), run.StartedAt.UTC().Format(time.RFC3339Nano), run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// Runs loads every stored run, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, initial_ribosomes, excess_factor, initial_chains_marking,
		       max_protein_output_goal, seed, steps, max_product,
		       final_marking, started_at, elapsed_ms
		FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var marking, startedAt string
		var elapsedMS int64
		if err := rows.Scan(
			&r.ID, &r.InitialRibosomes, &r.ExcessFactor, &r.InitialChainsMarking,
			&r.MaxProteinOutputGoal, &r.Seed, &r.Steps, &r.MaxProduct,
			&marking, &startedAt, &elapsedMS,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(marking), &r.FinalMarking); err != nil {
			return nil, fmt.Errorf("decode final marking for %s: %w", r.ID, err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("decode started_at for %s: %w", r.ID, err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
