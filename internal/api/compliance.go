package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sparkplan/sparkplan-core/internal/compliance"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/mqtt"
)

// handleCompliance runs the compliance checker against the estimate's
// current line items and stored panel schedule. The check is read only;
// nothing is persisted.
func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
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
	circuits, err := s.circuits.ListForEstimate(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list circuits", "estimate_id", id, "error", err)
		writeInternalError(w, "failed to list circuits")
		return
	}

	report := compliance.Check(items, circuits)

	if s.metrics != nil {
		s.metrics.WriteComplianceResult(id, report.ScorePct,
			report.Summary[compliance.StatusPass],
			report.Summary[compliance.StatusWarn],
			report.Summary[compliance.StatusFail])
	}
	payload, _ := json.Marshal(map[string]any{
		"score_pct": report.ScorePct,
		"failures":  report.Summary[compliance.StatusFail],
	})
	s.publishEvent(mqtt.Topics{}.ComplianceChecked(id), payload)

	writeJSON(w, http.StatusOK, report)
}
