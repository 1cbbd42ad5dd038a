package store

import (
	"database/sql"
)

// PathPoint represents one sample of a dynamic gesture's motion path.
type PathPoint struct {
	Sequence    int
	X           float64
	Y           float64
	TimestampMs int64
}

// PathRepository provides CRUD operations for dynamic gesture paths.
type PathRepository struct {
	db *sql.DB
}

// Paths returns the path repository for this store.
func (s *Store) Paths() *PathRepository {
	return &PathRepository{db: s.db}
}

// Replace deletes any previously stored path for gestureID and inserts
// points in a single transaction, mirroring the delete-then-reinsert
// pattern used to persist the recognizer's class table.
func (r *PathRepository) Replace(gestureID string, points []PathPoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM gesture_paths WHERE gesture_id = ?`, gestureID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO gesture_paths (gesture_id, sequence, x, y, timestamp_ms) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range points {
		if _, err := stmt.Exec(gestureID, i, p.X, p.Y, p.TimestampMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByGestureID retrieves a dynamic gesture's path ordered by sequence.
func (r *PathRepository) GetByGestureID(gestureID string) ([]PathPoint, error) {
	rows, err := r.db.Query(
		`SELECT sequence, x, y, timestamp_ms FROM gesture_paths WHERE gesture_id = ? ORDER BY sequence`,
		gestureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []PathPoint
	for rows.Next() {
		var p PathPoint
		if err := rows.Scan(&p.Sequence, &p.X, &p.Y, &p.TimestampMs); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// DeleteByGestureID removes a dynamic gesture's stored path.
func (r *PathRepository) DeleteByGestureID(gestureID string) error {
	_, err := r.db.Exec(`DELETE FROM gesture_paths WHERE gesture_id = ?`, gestureID)
	return err
}
