package handler

import (
	"net/http"

	"github.com/pkordes/tripboard/internal/domain"
)

// ReorderRequest is the body of the day and activity reorder endpoints.
// Both indices are required.
type ReorderRequest struct {
	OldIndex *int `json:"oldIndex"`
	NewIndex *int `json:"newIndex"`
}

func decodeReorder(w http.ResponseWriter, r *http.Request) (oldIndex, newIndex int, ok bool) {
	var body ReorderRequest
	if !decodeBody(w, r, &body, false) {
		return 0, 0, false
	}
	if body.OldIndex == nil || body.NewIndex == nil {
		requestError(w, "oldIndex and newIndex are required")
		return 0, 0, false
	}
	return *body.OldIndex, *body.NewIndex, true
}

// AddDay handles POST /trips/{tripId}/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	view, err := s.boards.AddDay(r.Context(), tripID)
	s.boardResult(w, r, http.StatusCreated, view, err)
}

// UpdateDay handles PATCH /trips/{tripId}/days/{dayId}.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	var patch domain.DayPatch
	if !decodeBody(w, r, &patch, false) {
		return
	}
	view, err := s.boards.UpdateDay(r.Context(), tripID, dayID, patch)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// DeleteDay handles DELETE /trips/{tripId}/days/{dayId}.
// The day's activities and accommodation go to the trash.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	view, err := s.boards.DeleteDay(r.Context(), tripID, dayID)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// ReorderDays handles POST /trips/{tripId}/days/reorder.
func (s *Server) ReorderDays(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	oldIndex, newIndex, ok := decodeReorder(w, r)
	if !ok {
		return
	}
	view, err := s.boards.ReorderDays(r.Context(), tripID, oldIndex, newIndex)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// SelectDay handles POST /trips/{tripId}/days/{dayId}/select.
// The selection decides where restored trash items land.
func (s *Server) SelectDay(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	view, err := s.boards.SelectDay(r.Context(), tripID, dayID)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// ClearSelection handles DELETE /trips/{tripId}/selection.
func (s *Server) ClearSelection(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	view, err := s.boards.SelectDay(r.Context(), tripID, "")
	s.boardResult(w, r, http.StatusOK, view, err)
}
