package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sparkplan/sparkplan-core/internal/cec"
	"github.com/sparkplan/sparkplan-core/internal/estimate"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/mqtt"
)

// analyzeRequest carries the detected rooms for one dwelling analysis.
type analyzeRequest struct {
	Rooms []cec.DetectedRoom `json:"rooms"`
}

// handleAnalyze seeds an estimate's line items from detected rooms.
//
// The previous line items are replaced wholesale: analysis is a reset,
// not a merge. Whole-dwelling devices are appended under a synthetic
// room label after the per-room output.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	start := time.Now()
	items, err := s.estimator.SeedFromRooms(r.Context(), id, req.Rooms)
	if err != nil {
		if errors.Is(err, estimate.ErrEstimateNotFound) {
			writeNotFound(w, "estimate not found")
			return
		}
		s.logger.Error("room analysis failed", "estimate_id", id, "error", err)
		writeInternalError(w, "room analysis failed")
		return
	}
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.WriteAnalysisRun(id, len(req.Rooms), len(items), float64(elapsed.Microseconds())/1000.0)
	}
	payload, _ := json.Marshal(map[string]int{
		"rooms":      len(req.Rooms),
		"line_items": len(items),
	})
	s.publishEvent(mqtt.Topics{}.EstimateSeeded(id), payload)

	writeJSON(w, http.StatusOK, items)
}
