package handler

import (
	"net/http"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/itinerary"
)

// AddActivityRequest is the body of POST /trips/{tripId}/days/{dayId}/activities.
// A missing index appends.
type AddActivityRequest struct {
	Activity *domain.Activity `json:"activity"`
	Index    *int             `json:"index"`
}

// MoveActivityRequest is the body of POST /trips/{tripId}/activities/{activityId}/move.
type MoveActivityRequest struct {
	SourceDayID string `json:"sourceDayId"`
	TargetDayID string `json:"targetDayId"`
	Index       *int   `json:"index"`
}

// AddActivity handles POST /trips/{tripId}/days/{dayId}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	var body AddActivityRequest
	if !decodeBody(w, r, &body, false) {
		return
	}
	if body.Activity == nil {
		requestError(w, "activity is required")
		return
	}
	index := itinerary.End
	if body.Index != nil {
		index = *body.Index
	}

	view, err := s.boards.AddActivity(r.Context(), tripID, dayID, *body.Activity, index)
	s.boardResult(w, r, http.StatusCreated, view, err)
}

// UpdateActivity handles PATCH /trips/{tripId}/days/{dayId}/activities/{activityId}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID, activityID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) || !bindPath(w, r, "activityId", &activityID) {
		return
	}
	var patch domain.ActivityPatch
	if !decodeBody(w, r, &patch, false) {
		return
	}
	view, err := s.boards.UpdateActivity(r.Context(), tripID, dayID, activityID, patch)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// RemoveActivity handles DELETE /trips/{tripId}/days/{dayId}/activities/{activityId}.
// The activity is moved to the trash, not destroyed.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID, activityID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) || !bindPath(w, r, "activityId", &activityID) {
		return
	}
	view, err := s.boards.RemoveActivity(r.Context(), tripID, dayID, activityID)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// ReorderActivities handles POST /trips/{tripId}/days/{dayId}/activities/reorder.
func (s *Server) ReorderActivities(w http.ResponseWriter, r *http.Request) {
	var tripID, dayID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "dayId", &dayID) {
		return
	}
	oldIndex, newIndex, ok := decodeReorder(w, r)
	if !ok {
		return
	}
	view, err := s.boards.ReorderActivity(r.Context(), tripID, dayID, oldIndex, newIndex)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// MoveActivity handles POST /trips/{tripId}/activities/{activityId}/move.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	var tripID, activityID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "activityId", &activityID) {
		return
	}
	var body MoveActivityRequest
	if !decodeBody(w, r, &body, false) {
		return
	}
	if body.SourceDayID == "" || body.TargetDayID == "" {
		requestError(w, "sourceDayId and targetDayId are required")
		return
	}
	index := itinerary.End
	if body.Index != nil {
		index = *body.Index
	}

	view, err := s.boards.MoveActivity(r.Context(), tripID, activityID, body.SourceDayID, body.TargetDayID, index)
	s.boardResult(w, r, http.StatusOK, view, err)
}
