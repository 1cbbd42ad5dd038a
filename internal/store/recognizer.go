package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ayusman/mudra/internal/hdc"
)

// RecognizerRepository persists an hdc.Recognizer's exported state: its
// construction parameters in recognizer_config, and one row per trained
// class in recognizer_classes.
type RecognizerRepository struct {
	db *sql.DB
}

// Recognizer returns the recognizer-state repository for this store.
func (s *Store) Recognizer() *RecognizerRepository {
	return &RecognizerRepository{db: s.db}
}

// SaveState persists state, replacing any previously saved config and class
// table in a single transaction.
func (r *RecognizerRepository) SaveState(state hdc.State) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM recognizer_config`); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO recognizer_config (id, dim, num_bins, threshold) VALUES (1, ?, ?, ?)`,
		state.Dim, state.NumBins, state.Threshold,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM recognizer_classes`); err != nil {
		return err
	}
	for name, class := range state.Classes {
		prototype, err := json.Marshal(class.Prototype)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO recognizer_classes (name, prototype, example_count) VALUES (?, ?, ?)`,
			name, string(prototype), class.ExampleCount,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadState reconstructs an hdc.State from the database, or ErrNotFound if
// no recognizer config has ever been saved.
func (r *RecognizerRepository) LoadState() (*hdc.State, error) {
	var state hdc.State
	err := r.db.QueryRow(
		`SELECT dim, num_bins, threshold FROM recognizer_config WHERE id = 1`,
	).Scan(&state.Dim, &state.NumBins, &state.Threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(`SELECT name, prototype, example_count FROM recognizer_classes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	state.Classes = make(map[string]hdc.ClassState)
	for rows.Next() {
		var name, prototypeJSON string
		var exampleCount int
		if err := rows.Scan(&name, &prototypeJSON, &exampleCount); err != nil {
			return nil, err
		}
		var prototype []float64
		if err := json.Unmarshal([]byte(prototypeJSON), &prototype); err != nil {
			return nil, err
		}
		state.Classes[name] = hdc.ClassState{Prototype: prototype, ExampleCount: exampleCount}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &state, nil
}
