package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/dragdrop"
)

// DragStartRequest is the body of POST /trips/{tripId}/drag/start.
// Kind selects which of the other fields are read.
type DragStartRequest struct {
	Kind          dragdrop.Kind                   `json:"kind"`
	ActivityID    string                          `json:"activityId,omitempty"`
	DayID         string                          `json:"dayId,omitempty"`
	SuggestionID  string                          `json:"suggestionId,omitempty"`
	Activity      *domain.ActivitySuggestion      `json:"activity,omitempty"`
	Accommodation *domain.AccommodationSuggestion `json:"accommodation,omitempty"`
}

// DragTargetRequest is the body of the over and end endpoints.
// A null or missing target means the pointer is over nothing droppable.
type DragTargetRequest struct {
	Target *dragdrop.Target `json:"target"`
}

// toItem maps the wire form onto the tagged drag item.
func (req DragStartRequest) toItem() (dragdrop.Item, error) {
	switch req.Kind {
	case dragdrop.KindExistingActivity:
		if req.ActivityID == "" {
			return nil, errors.New("activityId is required")
		}
		return dragdrop.ExistingActivity{ActivityID: req.ActivityID}, nil
	case dragdrop.KindWholeDay:
		if req.DayID == "" {
			return nil, errors.New("dayId is required")
		}
		return dragdrop.WholeDay{DayID: req.DayID}, nil
	case dragdrop.KindSuggestedActivity:
		if req.Activity == nil {
			return nil, errors.New("activity is required")
		}
		return dragdrop.SuggestedActivity{SuggestionID: req.SuggestionID, Suggestion: *req.Activity}, nil
	case dragdrop.KindSuggestedAccommodation:
		if req.Accommodation == nil {
			return nil, errors.New("accommodation is required")
		}
		return dragdrop.SuggestedAccommodation{SuggestionID: req.SuggestionID, Suggestion: *req.Accommodation}, nil
	default:
		return nil, errors.New("unknown drag kind " + string(req.Kind))
	}
}

// DragStart handles POST /trips/{tripId}/drag/start.
// Starting while another drag is active returns 409.
func (s *Server) DragStart(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	var body DragStartRequest
	if !decodeBody(w, r, &body, false) {
		return
	}
	item, err := body.toItem()
	if err != nil {
		requestError(w, err.Error())
		return
	}

	view, err := s.boards.DragStart(r.Context(), tripID, item)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// DragOver handles POST /trips/{tripId}/drag/over.
// Hovering an existing activity over another day moves it immediately.
func (s *Server) DragOver(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	var body DragTargetRequest
	if !decodeBody(w, r, &body, true) {
		return
	}
	view, err := s.boards.DragOver(r.Context(), tripID, body.Target)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// DragEnd handles POST /trips/{tripId}/drag/end.
// Ending without a target cancels the drag.
func (s *Server) DragEnd(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	var body DragTargetRequest
	if !decodeBody(w, r, &body, true) {
		return
	}
	outcome, view, err := s.boards.DragEnd(r.Context(), tripID, body.Target)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, outcomeToResponse(outcome, view))
}

// DragCancel handles POST /trips/{tripId}/drag/cancel.
func (s *Server) DragCancel(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	outcome, view, err := s.boards.DragCancel(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, outcomeToResponse(outcome, view))
}
