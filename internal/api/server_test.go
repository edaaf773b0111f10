package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/config"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/logging"
	"github.com/sparkplan/sparkplan-core/internal/panel"
)

// testServer creates a Server backed by in-memory SQLite. MQTT and metrics
// are left nil; the handlers treat both as optional.
func testServer(t *testing.T) *Server {
	t.Helper()

	db := setupTestDB(t)
	repo := estimate.NewSQLiteRepository(db)
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		App:       config.AppConfig{CodeEdition: "CEC 2021"},
		Logger:    log,
		Estimates: repo,
		Estimator: estimate.NewService(repo, log),
		Circuits:  panel.NewSQLiteRepository(db),
		MQTT:      nil,
		Metrics:   nil,
		Version:   "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	return srv
}

// setupTestDB creates an in-memory SQLite database with the full schema.
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

	if _, execErr := db.Exec(schema); execErr != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", execErr)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestEstimate posts an estimate through the API and returns it.
func createTestEstimate(t *testing.T, router http.Handler, body string) estimate.Estimate {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create estimate status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var est estimate.Estimate
	if err := json.Unmarshal(w.Body.Bytes(), &est); err != nil {
		t.Fatalf("unmarshal estimate: %v", err)
	}
	return est
}

// ─── Health Endpoint Tests ─────────────────────────────────────────

func TestHealth(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
	if resp["code_edition"] != "CEC 2021" {
		t.Errorf("code_edition = %v, want CEC 2021", resp["code_edition"])
	}
}

func TestHealth_ContentType(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	ct := w.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
}

// ─── Middleware Tests ──────────────────────────────────────────────

func TestRequestID_Generated(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestRequestID_PreservesClient(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "client-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "client-123")
	}
}

func TestCORS_Preflight(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("ACAO = %q, want %q", got, "http://localhost:3000")
	}
}

func TestNotFound(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nonexistent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Estimate CRUD Tests ───────────────────────────────────────────

func TestListEstimates_Empty(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp []estimate.Estimate
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 0 {
		t.Errorf("estimates = %d, want 0", len(resp))
	}
}

func TestCreateAndGetEstimate(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	est := createTestEstimate(t, router, `{"name": "Maple Street Bungalow", "dwelling_type": "single"}`)

	if est.ID == "" {
		t.Error("expected estimate ID to be auto-generated")
	}
	if est.FinishTier != "standard" {
		t.Errorf("finish_tier = %q, want default %q", est.FinishTier, "standard")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates/"+est.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}

	var got estimate.Estimate
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}
	if got.Name != "Maple Street Bungalow" {
		t.Errorf("name = %q, want %q", got.Name, "Maple Street Bungalow")
	}
}

func TestCreateEstimate_Validation(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"dwelling_type": "single"}`},
		{"unknown dwelling type", `{"name": "x", "dwelling_type": "castle"}`},
		{"unknown finish tier", `{"name": "x", "finish_tier": "bespoke"}`},
		{"malformed json", `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestGetEstimate_NotFound(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates/nonexistent-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateEstimate(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	est := createTestEstimate(t, router, `{"name": "Before"}`)

	body := `{"name": "After", "has_secondary_suite": true, "finish_tier": "premium"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/estimates/"+est.ID, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var got estimate.Estimate
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "After" {
		t.Errorf("name = %q, want %q", got.Name, "After")
	}
	if !got.HasSecondarySuite {
		t.Error("expected has_secondary_suite = true")
	}
	if got.FinishTier != "premium" {
		t.Errorf("finish_tier = %q, want premium", got.FinishTier)
	}
	// Untouched field survives the patch.
	if got.DwellingType != "single" {
		t.Errorf("dwelling_type = %q, want single", got.DwellingType)
	}
}

func TestDeleteEstimate(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	est := createTestEstimate(t, router, `{"name": "Doomed"}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/estimates/"+est.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/estimates/"+est.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteEstimate_NotFound(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/estimates/nonexistent-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Assembly Catalogue Tests ──────────────────────────────────────

func TestListAssemblies(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assemblies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []estimate.Assembly
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) == 0 {
		t.Fatal("expected a non-empty assembly catalogue")
	}
	if resp[0].Device == "" || resp[0].Conductor == "" {
		t.Errorf("first assembly incomplete: %+v", resp[0])
	}
}
