package panel

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository persists synthesized panel circuits.
type Repository interface {
	// ReplaceForEstimate atomically swaps an estimate's circuit schedule
	// for a freshly synthesized one. The previous schedule is removed in
	// the same transaction, so readers never observe a mixed set.
	ReplaceForEstimate(ctx context.Context, estimateID string, circuits []Circuit) error

	// ListForEstimate returns an estimate's circuits ordered by circuit
	// number.
	ListForEstimate(ctx context.Context, estimateID string) ([]Circuit, error)

	// DeleteForEstimate removes all circuits for an estimate.
	DeleteForEstimate(ctx context.Context, estimateID string) error
}

// SQLiteRepository implements Repository backed by SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a circuit repository using the provided
// database connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceForEstimate deletes the estimate's existing circuits and inserts
// the new schedule in a single transaction.
func (r *SQLiteRepository) ReplaceForEstimate(ctx context.Context, estimateID string, circuits []Circuit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM panel_circuits WHERE estimate_id = ?`, estimateID); err != nil {
		return fmt.Errorf("failed to clear panel circuits: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO panel_circuits (id, estimate_id, circuit_number, ampacity, poles, description, conductor, gfci, afci)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare circuit insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // statement close on exit

	for _, c := range circuits {
		_, err := stmt.ExecContext(ctx,
			c.ID, estimateID, c.CircuitNumber, c.Ampacity, c.Poles,
			c.Description, c.Conductor, boolToInt(c.GFCI), boolToInt(c.AFCI),
		)
		if err != nil {
			return fmt.Errorf("failed to insert circuit %d: %w", c.CircuitNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit circuit schedule: %w", err)
	}
	return nil
}

// ListForEstimate retrieves an estimate's circuit schedule.
func (r *SQLiteRepository) ListForEstimate(ctx context.Context, estimateID string) ([]Circuit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, estimate_id, circuit_number, ampacity, poles, description, conductor, gfci, afci, created_at
		FROM panel_circuits
		WHERE estimate_id = ?
		ORDER BY circuit_number
	`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query panel circuits: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows close on exit

	var circuits []Circuit
	for rows.Next() {
		c, err := scanCircuit(rows)
		if err != nil {
			return nil, err
		}
		circuits = append(circuits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate panel circuits: %w", err)
	}
	return circuits, nil
}

// DeleteForEstimate removes every circuit belonging to an estimate.
func (r *SQLiteRepository) DeleteForEstimate(ctx context.Context, estimateID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM panel_circuits WHERE estimate_id = ?`, estimateID)
	if err != nil {
		return fmt.Errorf("failed to delete panel circuits: %w", err)
	}
	return nil
}

func scanCircuit(rows *sql.Rows) (Circuit, error) {
	var c Circuit
	var gfci, afci int
	var createdAt string

	err := rows.Scan(&c.ID, &c.EstimateID, &c.CircuitNumber, &c.Ampacity, &c.Poles,
		&c.Description, &c.Conductor, &gfci, &afci, &createdAt)
	if err != nil {
		return Circuit{}, fmt.Errorf("failed to scan circuit: %w", err)
	}

	c.GFCI = gfci != 0
	c.AFCI = afci != 0
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
