package runlog

import (
	"fmt"

	"github.com/starford/dagaz/internal/models"
)

// Ledger defines the interface for run-ledger operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type Ledger interface {
	Record(r models.RunRecord) (int64, error)
	HasDate(date string) (bool, error)
	Recent(limit int) ([]models.RunRecord, error)
	Close() error
}

// Verify *DB satisfies Ledger at compile time.
var _ Ledger = (*DB)(nil)

// Record appends one run row and returns its id.
func (db *DB) Record(r models.RunRecord) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO runs (date, title, slug, category, path, checksum, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Date, r.Title, r.Slug, r.Category, r.Path, r.Checksum, r.Status)
	if err != nil {
		return 0, fmt.Errorf("runlog: record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("runlog: last insert id: %w", err)
	}
	return id, nil
}

// HasDate reports whether the ledger already holds a row for date
// (YYYY-MM-DD).
func (db *DB) HasDate(date string) (bool, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(1) FROM runs WHERE date = ?`, date).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("runlog: has date: %w", err)
	}
	return n > 0, nil
}

// Recent returns up to limit rows, newest first.
func (db *DB) Recent(limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.Query(`
		SELECT id, date, title, slug, category, path, checksum, status, created_at
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: recent: %w", err)
	}
	defer rows.Close()

	var out []models.RunRecord
	for rows.Next() {
		var r models.RunRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.Title, &r.Slug, &r.Category,
			&r.Path, &r.Checksum, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("runlog: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
