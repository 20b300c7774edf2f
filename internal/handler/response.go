package handler

import (
	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/dragdrop"
	"github.com/pkordes/tripboard/internal/service"
)

// BoardResponse is the body returned by every board operation.
type BoardResponse struct {
	Trip          domain.Trip  `json:"trip"`
	TotalCost     float64      `json:"totalCost"`
	TotalLabel    string       `json:"totalLabel"`
	Progress      float64      `json:"progress"`
	SelectedDayID string       `json:"selectedDayId,omitempty"`
	Drag          DragResponse `json:"drag"`
}

// DragResponse describes the drag session. Outcome is set only by end and cancel.
type DragResponse struct {
	State   string `json:"state"`
	Kind    string `json:"kind,omitempty"`
	Outcome string `json:"outcome,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []domain.TripSummary `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// TrashList is the body of GET /trips/{tripId}/trash.
type TrashList struct {
	Data []domain.TrashItem `json:"data"`
}

// EmptyTrashResponse is the body of DELETE /trips/{tripId}/trash.
type EmptyTrashResponse struct {
	Removed int `json:"removed"`
}

// SuggestionList is the body of GET /suggestions.
type SuggestionList struct {
	Data []domain.Suggestion `json:"data"`
}

func boardToResponse(v service.BoardView) BoardResponse {
	return BoardResponse{
		Trip:          v.Trip,
		TotalCost:     v.TotalCost,
		TotalLabel:    v.TotalLabel,
		Progress:      v.Progress,
		SelectedDayID: v.SelectedDay,
		Drag: DragResponse{
			State: v.Drag.State.String(),
			Kind:  string(v.Drag.Kind),
		},
	}
}

func outcomeToResponse(o dragdrop.Outcome, v service.BoardView) BoardResponse {
	resp := boardToResponse(v)
	resp.Drag.Outcome = string(o)
	return resp
}
