package estimate

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the estimates,
// line_items, and panel_circuits tables.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE estimates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			dwelling_type TEXT NOT NULL DEFAULT 'single',
			has_secondary_suite INTEGER NOT NULL DEFAULT 0,
			unit_label TEXT NOT NULL DEFAULT '',
			finish_tier TEXT NOT NULL DEFAULT 'standard',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE line_items (
			id TEXT PRIMARY KEY,
			estimate_id TEXT NOT NULL,
			room_label TEXT NOT NULL,
			device_type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1,
			conductor TEXT NOT NULL DEFAULT '',
			labour_hours REAL NOT NULL DEFAULT 0,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (estimate_id) REFERENCES estimates(id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE panel_circuits (
			id TEXT PRIMARY KEY,
			estimate_id TEXT NOT NULL,
			circuit_number INTEGER NOT NULL,
			ampacity INTEGER NOT NULL DEFAULT 15,
			poles INTEGER NOT NULL DEFAULT 1,
			description TEXT NOT NULL DEFAULT '',
			conductor TEXT NOT NULL DEFAULT '',
			gfci INTEGER NOT NULL DEFAULT 0,
			afci INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (estimate_id) REFERENCES estimates(id) ON DELETE CASCADE,
			UNIQUE (estimate_id, circuit_number)
		) STRICT;
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testEstimate() *Estimate {
	return &Estimate{
		ID:           "est-001",
		Name:         "Maple Street Bungalow",
		DwellingType: "single",
		FinishTier:   "standard",
	}
}

func testLineItems(estimateID string) []LineItem {
	return []LineItem{
		{ID: "li-1", EstimateID: estimateID, RoomLabel: "Kitchen", DeviceType: "gfci_receptacle", Quantity: 2, Conductor: "12/2 NM-B", LabourHours: 0.25, SortOrder: 0},
		{ID: "li-2", EstimateID: estimateID, RoomLabel: "Kitchen", DeviceType: "split_receptacle", Quantity: 2, Conductor: "14/3 NM-B", LabourHours: 0.30, SortOrder: 1},
		{ID: "li-3", EstimateID: estimateID, RoomLabel: "Bedroom 1", DeviceType: "duplex_receptacle", Quantity: 3, Conductor: "14/2 NM-B", LabourHours: 0.18, SortOrder: 2},
	}
}

func TestCreateAndGetEstimate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}

	got, err := repo.GetEstimate(ctx, "est-001")
	if err != nil {
		t.Fatalf("GetEstimate: %v", err)
	}
	if got.Name != "Maple Street Bungalow" {
		t.Errorf("name: got %q, want %q", got.Name, "Maple Street Bungalow")
	}
	if got.DwellingType != "single" || got.FinishTier != "standard" {
		t.Errorf("unexpected estimate: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Errorf("expected timestamps to be populated")
	}
}

func TestGetEstimateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	_, err := repo.GetEstimate(context.Background(), "missing")
	if !errors.Is(err, ErrEstimateNotFound) {
		t.Fatalf("expected ErrEstimateNotFound, got %v", err)
	}
}

func TestUpdateEstimate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	est := testEstimate()
	if err := repo.CreateEstimate(ctx, est); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}

	est.Name = "Maple Street Reno"
	est.FinishTier = "premium"
	est.HasSecondarySuite = true
	if err := repo.UpdateEstimate(ctx, est); err != nil {
		t.Fatalf("UpdateEstimate: %v", err)
	}

	got, err := repo.GetEstimate(ctx, est.ID)
	if err != nil {
		t.Fatalf("GetEstimate: %v", err)
	}
	if got.Name != "Maple Street Reno" || got.FinishTier != "premium" || !got.HasSecondarySuite {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateEstimateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	err := repo.UpdateEstimate(context.Background(), testEstimate())
	if !errors.Is(err, ErrEstimateNotFound) {
		t.Fatalf("expected ErrEstimateNotFound, got %v", err)
	}
}

func TestDeleteEstimateCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if err := repo.CreateLineItems(ctx, testLineItems("est-001")); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO panel_circuits (id, estimate_id, circuit_number) VALUES ('cir-1', 'est-001', 1)`); err != nil {
		t.Fatalf("seeding circuit: %v", err)
	}

	if err := repo.DeleteEstimate(ctx, "est-001"); err != nil {
		t.Fatalf("DeleteEstimate: %v", err)
	}

	if _, err := repo.GetEstimate(ctx, "est-001"); !errors.Is(err, ErrEstimateNotFound) {
		t.Errorf("estimate still present after delete: %v", err)
	}
	items, err := repo.ListLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("ListLineItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no line items after delete, got %d", len(items))
	}
	var circuits int
	if err := db.QueryRow(`SELECT COUNT(*) FROM panel_circuits WHERE estimate_id = 'est-001'`).Scan(&circuits); err != nil {
		t.Fatalf("counting circuits: %v", err)
	}
	if circuits != 0 {
		t.Errorf("expected no circuits after delete, got %d", circuits)
	}
}

func TestDeleteEstimateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	err := repo.DeleteEstimate(context.Background(), "missing")
	if !errors.Is(err, ErrEstimateNotFound) {
		t.Fatalf("expected ErrEstimateNotFound, got %v", err)
	}
}

func TestCreateLineItemsBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if err := repo.CreateLineItems(ctx, testLineItems("est-001")); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}

	items, err := repo.ListLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("ListLineItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(items))
	}

	// Display order follows sort_order.
	for i, item := range items {
		if item.SortOrder != i {
			t.Errorf("position %d: got sort order %d", i, item.SortOrder)
		}
	}
	if items[0].DeviceType != "gfci_receptacle" {
		t.Errorf("first item: got %q, want gfci_receptacle", items[0].DeviceType)
	}
}

func TestReplaceLineItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if err := repo.CreateLineItems(ctx, testLineItems("est-001")); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}

	replacement := []LineItem{
		{ID: "li-new-1", EstimateID: "est-001", RoomLabel: "Garage", DeviceType: "duplex_receptacle", Quantity: 2},
		{ID: "li-new-2", EstimateID: "est-001", RoomLabel: "Garage", DeviceType: "vapour_proof_light", Quantity: 1, SortOrder: 1},
	}
	if err := repo.ReplaceLineItems(ctx, "est-001", replacement); err != nil {
		t.Fatalf("ReplaceLineItems: %v", err)
	}

	items, err := repo.ListLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("ListLineItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 line items after replace, got %d", len(items))
	}
	for _, item := range items {
		if item.RoomLabel != "Garage" {
			t.Errorf("stale item survived the replace: %+v", item)
		}
	}
}

func TestReplaceLineItemsFailureKeepsPrevious(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if err := repo.CreateLineItems(ctx, testLineItems("est-001")); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}

	// Duplicate IDs make the second insert violate the primary key after
	// the delete has already run inside the transaction.
	bad := []LineItem{
		{ID: "li-dup", EstimateID: "est-001", RoomLabel: "Kitchen", DeviceType: "gfci_receptacle", Quantity: 1},
		{ID: "li-dup", EstimateID: "est-001", RoomLabel: "Kitchen", DeviceType: "split_receptacle", Quantity: 1},
	}
	if err := repo.ReplaceLineItems(ctx, "est-001", bad); err == nil {
		t.Fatal("expected ReplaceLineItems to fail on duplicate IDs")
	}

	items, err := repo.ListLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("ListLineItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected the previous 3 line items to survive a failed replace, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == "li-dup" {
			t.Errorf("partial insert leaked out of the failed replace: %+v", item)
		}
	}
}

func TestReplaceLineItemsEmptyClears(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if err := repo.CreateLineItems(ctx, testLineItems("est-001")); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}

	if err := repo.ReplaceLineItems(ctx, "est-001", nil); err != nil {
		t.Fatalf("ReplaceLineItems (empty): %v", err)
	}

	items, err := repo.ListLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("ListLineItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected replace with an empty set to clear, got %d items", len(items))
	}
}

func TestCreateLineItemsEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	if err := repo.CreateLineItems(context.Background(), nil); err != nil {
		t.Fatalf("CreateLineItems with empty batch: %v", err)
	}
}

func TestUpdateLineItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	items := testLineItems("est-001")
	if err := repo.CreateLineItems(ctx, items); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}

	items[0].Quantity = 5
	items[0].Description = "extra counter run"
	if err := repo.UpdateLineItem(ctx, &items[0]); err != nil {
		t.Fatalf("UpdateLineItem: %v", err)
	}

	got, err := repo.GetLineItem(ctx, "li-1")
	if err != nil {
		t.Fatalf("GetLineItem: %v", err)
	}
	if got.Quantity != 5 || got.Description != "extra counter run" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestDeleteLineItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	err := repo.DeleteLineItem(context.Background(), "missing")
	if !errors.Is(err, ErrLineItemNotFound) {
		t.Fatalf("expected ErrLineItemNotFound, got %v", err)
	}
}

func TestDeleteLineItemsReturnsCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	if err := repo.CreateEstimate(ctx, testEstimate()); err != nil {
		t.Fatalf("CreateEstimate: %v", err)
	}
	if err := repo.CreateLineItems(ctx, testLineItems("est-001")); err != nil {
		t.Fatalf("CreateLineItems: %v", err)
	}

	n, err := repo.DeleteLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("DeleteLineItems: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows deleted, got %d", n)
	}

	n, err = repo.DeleteLineItems(ctx, "est-001")
	if err != nil {
		t.Fatalf("DeleteLineItems (empty): %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows deleted on second pass, got %d", n)
	}
}
