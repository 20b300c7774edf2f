package handler

import (
	"net/http"

	"github.com/pkordes/tripboard/internal/domain"
)

// SetAccommodation handles PUT /trips/{tripId}/days/{dayId}/accommodation.
// An existing stay on the day is replaced without going to the trash.
func (s *Server) SetAccommodation(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	var acc domain.Accommodation
	if !decodeBody(w, r, &acc, false) {
		return
	}
	view, err := s.boards.SetAccommodation(r.Context(), tripID, dayID, acc)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// RemoveAccommodation handles DELETE /trips/{tripId}/days/{dayId}/accommodation.
func (s *Server) RemoveAccommodation(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	view, err := s.boards.RemoveAccommodation(r.Context(), tripID, dayID)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// AutoFindStay handles POST /trips/{tripId}/days/{dayId}/accommodation/auto.
// Supports ?budget= as the maximum nightly price; absent means no limit.
func (s *Server) AutoFindStay(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	var budget *float64
	if !bindQuery(w, r, "budget", &budget) {
		return
	}
	var maxPrice float64
	if budget != nil {
		maxPrice = *budget
	}

	view, err := s.boards.AutoFindStay(r.Context(), tripID, dayID, maxPrice)
	s.boardResult(w, r, http.StatusOK, view, err)
}
