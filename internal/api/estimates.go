package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sparkplan/sparkplan-core/internal/cec"
	"github.com/sparkplan/sparkplan-core/internal/estimate"
	"github.com/sparkplan/sparkplan-core/internal/infrastructure/mqtt"
)

// createEstimateRequest is the request body for creating an estimate.
type createEstimateRequest struct {
	Name              string `json:"name"`
	DwellingType      string `json:"dwelling_type"`
	HasSecondarySuite bool   `json:"has_secondary_suite"`
	UnitLabel         string `json:"unit_label"`
	FinishTier        string `json:"finish_tier"`
}

// updateEstimateRequest is the request body for updating an estimate.
// Only non-nil fields are applied.
type updateEstimateRequest struct {
	Name              *string `json:"name"`
	DwellingType      *string `json:"dwelling_type"`
	HasSecondarySuite *bool   `json:"has_secondary_suite"`
	UnitLabel         *string `json:"unit_label"`
	FinishTier        *string `json:"finish_tier"`
}

// handleListEstimates returns all estimates, newest first.
func (s *Server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	estimates, err := s.estimates.ListEstimates(r.Context())
	if err != nil {
		s.logger.Error("failed to list estimates", "error", err)
		writeInternalError(w, "failed to list estimates")
		return
	}
	writeJSON(w, http.StatusOK, estimates)
}

// handleCreateEstimate creates a new estimate.
func (s *Server) handleCreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req createEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "name is required")
		return
	}
	if req.DwellingType == "" {
		req.DwellingType = string(cec.DwellingSingle)
	}
	if !validDwellingType(req.DwellingType) {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "unknown dwelling_type: "+req.DwellingType)
		return
	}
	if req.FinishTier == "" {
		req.FinishTier = string(cec.TierStandard)
	}
	if !validFinishTier(req.FinishTier) {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "unknown finish_tier: "+req.FinishTier)
		return
	}

	est := &estimate.Estimate{
		ID:                uuid.NewString(),
		Name:              req.Name,
		DwellingType:      req.DwellingType,
		HasSecondarySuite: req.HasSecondarySuite,
		UnitLabel:         req.UnitLabel,
		FinishTier:        req.FinishTier,
	}
	if err := s.estimates.CreateEstimate(r.Context(), est); err != nil {
		s.logger.Error("failed to create estimate", "error", err)
		writeInternalError(w, "failed to create estimate")
		return
	}

	payload, _ := json.Marshal(map[string]string{"id": est.ID, "name": est.Name})
	s.publishEvent(mqtt.Topics{}.EstimateCreated(est.ID), payload)

	writeJSON(w, http.StatusCreated, est)
}

// handleGetEstimate returns a single estimate by ID.
func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	est, err := s.estimates.GetEstimate(r.Context(), id)
	if err != nil {
		if errors.Is(err, estimate.ErrEstimateNotFound) {
			writeNotFound(w, "estimate not found")
			return
		}
		s.logger.Error("failed to get estimate", "id", id, "error", err)
		writeInternalError(w, "failed to get estimate")
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// handleUpdateEstimate applies a partial update to an estimate.
func (s *Server) handleUpdateEstimate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	est, err := s.estimates.GetEstimate(r.Context(), id)
	if err != nil {
		if errors.Is(err, estimate.ErrEstimateNotFound) {
			writeNotFound(w, "estimate not found")
			return
		}
		s.logger.Error("failed to get estimate", "id", id, "error", err)
		writeInternalError(w, "failed to get estimate")
		return
	}

	var req updateEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "name cannot be empty")
			return
		}
		est.Name = *req.Name
	}
	if req.DwellingType != nil {
		if !validDwellingType(*req.DwellingType) {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "unknown dwelling_type: "+*req.DwellingType)
			return
		}
		est.DwellingType = *req.DwellingType
	}
	if req.HasSecondarySuite != nil {
		est.HasSecondarySuite = *req.HasSecondarySuite
	}
	if req.UnitLabel != nil {
		est.UnitLabel = *req.UnitLabel
	}
	if req.FinishTier != nil {
		if !validFinishTier(*req.FinishTier) {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "unknown finish_tier: "+*req.FinishTier)
			return
		}
		est.FinishTier = *req.FinishTier
	}

	if err := s.estimates.UpdateEstimate(r.Context(), est); err != nil {
		s.logger.Error("failed to update estimate", "id", id, "error", err)
		writeInternalError(w, "failed to update estimate")
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// handleDeleteEstimate deletes an estimate and all its line items and circuits.
func (s *Server) handleDeleteEstimate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.estimates.DeleteEstimate(r.Context(), id); err != nil {
		if errors.Is(err, estimate.ErrEstimateNotFound) {
			writeNotFound(w, "estimate not found")
			return
		}
		s.logger.Error("failed to delete estimate", "id", id, "error", err)
		writeInternalError(w, "failed to delete estimate")
		return
	}

	payload, _ := json.Marshal(map[string]string{"id": id})
	s.publishEvent(mqtt.Topics{}.EstimateDeleted(id), payload)

	w.WriteHeader(http.StatusNoContent)
}

func validDwellingType(v string) bool {
	switch cec.DwellingCategory(v) {
	case cec.DwellingSingle, cec.DwellingDuplex, cec.DwellingTriplex, cec.DwellingFourplex:
		return true
	}
	return false
}

func validFinishTier(v string) bool {
	switch cec.FinishTier(v) {
	case cec.TierStandard, cec.TierPremium, cec.TierLuxury:
		return true
	}
	return false
}
