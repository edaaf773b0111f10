package estimate

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository defines the interface for estimate persistence operations.
type Repository interface {
	CreateEstimate(ctx context.Context, est *Estimate) error
	ListEstimates(ctx context.Context) ([]Estimate, error)
	GetEstimate(ctx context.Context, id string) (*Estimate, error)
	UpdateEstimate(ctx context.Context, est *Estimate) error
	DeleteEstimate(ctx context.Context, id string) error

	CreateLineItem(ctx context.Context, item *LineItem) error
	// CreateLineItems inserts a batch inside one transaction.
	CreateLineItems(ctx context.Context, items []LineItem) error
	// ReplaceLineItems atomically swaps an estimate's line items for a
	// freshly seeded set. The previous items are removed in the same
	// transaction, so a failed insert leaves them untouched and readers
	// never observe a partially replaced list.
	ReplaceLineItems(ctx context.Context, estimateID string, items []LineItem) error
	ListLineItems(ctx context.Context, estimateID string) ([]LineItem, error)
	GetLineItem(ctx context.Context, id string) (*LineItem, error)
	UpdateLineItem(ctx context.Context, item *LineItem) error
	DeleteLineItem(ctx context.Context, id string) error
	DeleteLineItems(ctx context.Context, estimateID string) (int64, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed estimate repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateEstimate inserts a new estimate into the database.
func (r *SQLiteRepository) CreateEstimate(ctx context.Context, est *Estimate) error {
	const query = `INSERT INTO estimates (id, name, dwelling_type, has_secondary_suite,
		unit_label, finish_tier)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		est.ID, est.Name, est.DwellingType, est.HasSecondarySuite,
		est.UnitLabel, est.FinishTier)
	if err != nil {
		return fmt.Errorf("inserting estimate %s: %w", est.ID, err)
	}
	return nil
}

// ListEstimates returns all estimates, newest first.
func (r *SQLiteRepository) ListEstimates(ctx context.Context) ([]Estimate, error) {
	const query = `SELECT id, name, dwelling_type, has_secondary_suite,
		unit_label, finish_tier, created_at, updated_at
		FROM estimates ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying estimates: %w", err)
	}
	defer rows.Close()

	var estimates []Estimate
	for rows.Next() {
		e, err := scanEstimateRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning estimate row: %w", err)
		}
		estimates = append(estimates, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimate rows: %w", err)
	}
	return estimates, nil
}

// GetEstimate returns a single estimate by ID.
func (r *SQLiteRepository) GetEstimate(ctx context.Context, id string) (*Estimate, error) {
	const query = `SELECT id, name, dwelling_type, has_secondary_suite,
		unit_label, finish_tier, created_at, updated_at
		FROM estimates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanEstimate(row)
}

// UpdateEstimate updates an existing estimate record.
func (r *SQLiteRepository) UpdateEstimate(ctx context.Context, est *Estimate) error {
	const query = `UPDATE estimates SET name = ?, dwelling_type = ?,
		has_secondary_suite = ?, unit_label = ?, finish_tier = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		est.Name, est.DwellingType, est.HasSecondarySuite,
		est.UnitLabel, est.FinishTier, est.ID)
	if err != nil {
		return fmt.Errorf("updating estimate %s: %w", est.ID, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrEstimateNotFound
	}
	return nil
}

// DeleteEstimate removes an estimate with its line items and circuits in
// one transaction.
func (r *SQLiteRepository) DeleteEstimate(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM panel_circuits WHERE estimate_id = ?", id); err != nil {
		return fmt.Errorf("deleting circuits for estimate %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE estimate_id = ?", id); err != nil {
		return fmt.Errorf("deleting line items for estimate %s: %w", id, err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM estimates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting estimate %s: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrEstimateNotFound
	}
	return tx.Commit()
}

// CreateLineItem inserts a new line item into the database.
func (r *SQLiteRepository) CreateLineItem(ctx context.Context, item *LineItem) error {
	const query = `INSERT INTO line_items (id, estimate_id, room_label, device_type,
		description, quantity, conductor, labour_hours, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.EstimateID, item.RoomLabel, item.DeviceType,
		item.Description, item.Quantity, item.Conductor, item.LabourHours,
		item.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting line item %s: %w", item.ID, err)
	}
	return nil
}

// CreateLineItems inserts a batch of line items inside one transaction.
func (r *SQLiteRepository) CreateLineItems(ctx context.Context, items []LineItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	const query = `INSERT INTO line_items (id, estimate_id, room_label, device_type,
		description, quantity, conductor, labour_hours, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing line item insert: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		item := &items[i]
		if _, err := stmt.ExecContext(ctx,
			item.ID, item.EstimateID, item.RoomLabel, item.DeviceType,
			item.Description, item.Quantity, item.Conductor, item.LabourHours,
			item.SortOrder); err != nil {
			return fmt.Errorf("inserting line item %s: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

// ReplaceLineItems deletes an estimate's existing line items and inserts
// the new set inside one transaction.
func (r *SQLiteRepository) ReplaceLineItems(ctx context.Context, estimateID string, items []LineItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE estimate_id = ?`, estimateID); err != nil {
		return fmt.Errorf("clearing previous line items: %w", err)
	}

	const query = `INSERT INTO line_items (id, estimate_id, room_label, device_type,
		description, quantity, conductor, labour_hours, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing line item insert: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		item := &items[i]
		if _, err := stmt.ExecContext(ctx,
			item.ID, item.EstimateID, item.RoomLabel, item.DeviceType,
			item.Description, item.Quantity, item.Conductor, item.LabourHours,
			item.SortOrder); err != nil {
			return fmt.Errorf("inserting line item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing line item replace: %w", err)
	}
	return nil
}

// ListLineItems returns the line items for an estimate in display order.
func (r *SQLiteRepository) ListLineItems(ctx context.Context, estimateID string) ([]LineItem, error) {
	const query = `SELECT id, estimate_id, room_label, device_type, description,
		quantity, conductor, labour_hours, sort_order, created_at, updated_at
		FROM line_items WHERE estimate_id = ? ORDER BY sort_order, room_label, device_type`
	rows, err := r.db.QueryContext(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("querying line items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		it, err := scanLineItemRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning line item row: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line item rows: %w", err)
	}
	return items, nil
}

// GetLineItem returns a single line item by ID.
func (r *SQLiteRepository) GetLineItem(ctx context.Context, id string) (*LineItem, error) {
	const query = `SELECT id, estimate_id, room_label, device_type, description,
		quantity, conductor, labour_hours, sort_order, created_at, updated_at
		FROM line_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanLineItem(row)
}

// UpdateLineItem updates an existing line item record.
func (r *SQLiteRepository) UpdateLineItem(ctx context.Context, item *LineItem) error {
	const query = `UPDATE line_items SET room_label = ?, device_type = ?,
		description = ?, quantity = ?, conductor = ?, labour_hours = ?, sort_order = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		item.RoomLabel, item.DeviceType, item.Description, item.Quantity,
		item.Conductor, item.LabourHours, item.SortOrder, item.ID)
	if err != nil {
		return fmt.Errorf("updating line item %s: %w", item.ID, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrLineItemNotFound
	}
	return nil
}

// DeleteLineItem removes a single line item by ID.
func (r *SQLiteRepository) DeleteLineItem(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM line_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting line item %s: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrLineItemNotFound
	}
	return nil
}

// DeleteLineItems removes all line items for an estimate.
// Returns the number of rows deleted.
func (r *SQLiteRepository) DeleteLineItems(ctx context.Context, estimateID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM line_items WHERE estimate_id = ?", estimateID)
	if err != nil {
		return 0, fmt.Errorf("deleting line items for estimate %s: %w", estimateID, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	return n, nil
}

// scanEstimate scans a single row into an Estimate (for QueryRow).
func scanEstimate(row *sql.Row) (*Estimate, error) {
	var e Estimate
	var createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.Name, &e.DwellingType, &e.HasSecondarySuite,
		&e.UnitLabel, &e.FinishTier, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEstimateNotFound
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// scanEstimateRow scans an estimate from a Rows cursor.
func scanEstimateRow(rows *sql.Rows) (*Estimate, error) {
	var e Estimate
	var createdAt, updatedAt string

	err := rows.Scan(&e.ID, &e.Name, &e.DwellingType, &e.HasSecondarySuite,
		&e.UnitLabel, &e.FinishTier, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning estimate row: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// scanLineItem scans a single row into a LineItem (for QueryRow).
func scanLineItem(row *sql.Row) (*LineItem, error) {
	var it LineItem
	var createdAt, updatedAt string

	err := row.Scan(&it.ID, &it.EstimateID, &it.RoomLabel, &it.DeviceType,
		&it.Description, &it.Quantity, &it.Conductor, &it.LabourHours,
		&it.SortOrder, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLineItemNotFound
		}
		return nil, fmt.Errorf("scanning line item: %w", err)
	}
	it.CreatedAt = parseTime(createdAt)
	it.UpdatedAt = parseTime(updatedAt)
	return &it, nil
}

// scanLineItemRow scans a line item from a Rows cursor.
func scanLineItemRow(rows *sql.Rows) (*LineItem, error) {
	var it LineItem
	var createdAt, updatedAt string

	err := rows.Scan(&it.ID, &it.EstimateID, &it.RoomLabel, &it.DeviceType,
		&it.Description, &it.Quantity, &it.Conductor, &it.LabourHours,
		&it.SortOrder, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning line item row: %w", err)
	}
	it.CreatedAt = parseTime(createdAt)
	it.UpdatedAt = parseTime(updatedAt)
	return &it, nil
}

// parseTime parses an ISO 8601 timestamp from SQLite.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}
