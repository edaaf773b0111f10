package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sparkplan/sparkplan-core/internal/infrastructure/mqtt"
	"github.com/sparkplan/sparkplan-core/internal/panel"
)

// handleListCircuits returns the stored panel schedule for an estimate.
func (s *Server) handleListCircuits(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.requireEstimate(w, r, id) {
		return
	}

	circuits, err := s.circuits.ListForEstimate(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list circuits", "estimate_id", id, "error", err)
		writeInternalError(w, "failed to list circuits")
		return
	}
	writeJSON(w, http.StatusOK, circuits)
}

// handleSynthesizePanel rebuilds the panel schedule from the estimate's
// current line items. The previous schedule is replaced atomically.
func (s *Server) handleSynthesizePanel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.requireEstimate(w, r, id) {
		return
	}

	items, err := s.estimates.ListLineItems(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list line items", "estimate_id", id, "error", err)
		writeInternalError(w, "failed to list line items")
		return
	}

	circuits := panel.Synthesize(items)
	if err := s.circuits.ReplaceForEstimate(r.Context(), id, circuits); err != nil {
		s.logger.Error("failed to store panel schedule", "estimate_id", id, "error", err)
		writeInternalError(w, "failed to store panel schedule")
		return
	}

	totalAmps := 0
	for _, c := range circuits {
		totalAmps += c.Ampacity * c.Poles
	}
	if s.metrics != nil {
		s.metrics.WritePanelSummary(id, len(circuits), totalAmps)
	}
	payload, _ := json.Marshal(map[string]int{
		"circuits":   len(circuits),
		"total_amps": totalAmps,
	})
	s.publishEvent(mqtt.Topics{}.PanelSynthesized(id), payload)

	s.logger.Info("panel schedule synthesized",
		"estimate_id", id,
		"circuits", len(circuits),
		"total_amps", totalAmps)

	writeJSON(w, http.StatusOK, circuits)
}
