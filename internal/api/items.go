package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sparkplan/sparkplan-core/internal/estimate"
)

// createLineItemRequest is the request body for adding a line item manually.
// Description, conductor, and labour hours default from the matched assembly
// when omitted.
type createLineItemRequest struct {
	RoomLabel   string   `json:"room_label"`
	DeviceType  string   `json:"device_type"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Conductor   string   `json:"conductor"`
	LabourHours *float64 `json:"labour_hours"`
}

// updateLineItemRequest is the request body for editing a line item.
// Only non-nil fields are applied.
type updateLineItemRequest struct {
	RoomLabel   *string  `json:"room_label"`
	DeviceType  *string  `json:"device_type"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Conductor   *string  `json:"conductor"`
	LabourHours *float64 `json:"labour_hours"`
	SortOrder   *int     `json:"sort_order"`
}

// handleListLineItems returns all line items for an estimate in sort order.
func (s *Server) handleListLineItems(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, items)
}

// handleCreateLineItem adds a manual line item to an estimate.
func (s *Server) handleCreateLineItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.requireEstimate(w, r, id) {
		return
	}

	var req createLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.RoomLabel == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "room_label is required")
		return
	}
	if req.DeviceType == "" {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "device_type is required")
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, "quantity cannot be negative")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item := &estimate.LineItem{
		ID:          uuid.NewString(),
		EstimateID:  id,
		RoomLabel:   req.RoomLabel,
		DeviceType:  req.DeviceType,
		Description: req.Description,
		Quantity:    req.Quantity,
		Conductor:   req.Conductor,
		SortOrder:   s.nextSortOrder(r, id),
	}
	if req.LabourHours != nil {
		item.LabourHours = *req.LabourHours
	}

	// Fill gaps from the installation catalogue when the caller left them.
	if item.Description == "" || item.Conductor == "" || req.LabourHours == nil {
		if matches, err := estimate.MatchAssembly(req.DeviceType); err == nil {
			best := matches[0].Assembly
			if item.Description == "" {
				item.Description = best.Description
			}
			if item.Conductor == "" {
				item.Conductor = best.Conductor
			}
			if req.LabourHours == nil {
				item.LabourHours = best.LabourHours
			}
		}
	}

	if err := s.estimates.CreateLineItem(r.Context(), item); err != nil {
		s.logger.Error("failed to create line item", "estimate_id", id, "error", err)
		writeInternalError(w, "failed to create line item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleUpdateLineItem applies a partial update to a line item.
func (s *Server) handleUpdateLineItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	item, err := s.estimates.GetLineItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, estimate.ErrLineItemNotFound) {
			writeNotFound(w, "line item not found")
			return
		}
		s.logger.Error("failed to get line item", "item_id", itemID, "error", err)
		writeInternalError(w, "failed to get line item")
		return
	}

	var req updateLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.RoomLabel != nil {
		item.RoomLabel = *req.RoomLabel
	}
	if req.DeviceType != nil {
		item.DeviceType = *req.DeviceType
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			writeError(w, http.StatusBadRequest, ErrCodeValidation, "quantity cannot be negative")
			return
		}
		item.Quantity = *req.Quantity
	}
	if req.Conductor != nil {
		item.Conductor = *req.Conductor
	}
	if req.LabourHours != nil {
		item.LabourHours = *req.LabourHours
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.estimates.UpdateLineItem(r.Context(), item); err != nil {
		s.logger.Error("failed to update line item", "item_id", itemID, "error", err)
		writeInternalError(w, "failed to update line item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleDeleteLineItem removes a single line item.
func (s *Server) handleDeleteLineItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.estimates.DeleteLineItem(r.Context(), itemID); err != nil {
		if errors.Is(err, estimate.ErrLineItemNotFound) {
			writeNotFound(w, "line item not found")
			return
		}
		s.logger.Error("failed to delete line item", "item_id", itemID, "error", err)
		writeInternalError(w, "failed to delete line item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireEstimate writes a 404 or 500 and returns false if the estimate
// does not exist or cannot be read.
func (s *Server) requireEstimate(w http.ResponseWriter, r *http.Request, id string) bool {
	if _, err := s.estimates.GetEstimate(r.Context(), id); err != nil {
		if errors.Is(err, estimate.ErrEstimateNotFound) {
			writeNotFound(w, "estimate not found")
			return false
		}
		s.logger.Error("failed to get estimate", "id", id, "error", err)
		writeInternalError(w, "failed to get estimate")
		return false
	}
	return true
}

// nextSortOrder returns a sort order that places a new item after all
// existing items for the estimate.
func (s *Server) nextSortOrder(r *http.Request, estimateID string) int {
	items, err := s.estimates.ListLineItems(r.Context(), estimateID)
	if err != nil {
		return 0
	}
	next := 0
	for _, it := range items {
		if it.SortOrder >= next {
			next = it.SortOrder + 1
		}
	}
	return next
}
