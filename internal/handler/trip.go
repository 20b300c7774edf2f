package handler

import (
	"net/http"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/service"
)

// CreateTripRequest is the body of POST /trips.
// Days lists the day themes; an empty list creates a single day.
type CreateTripRequest struct {
	Title      string   `json:"title"`
	Currency   string   `json:"currency"`
	BudgetGoal float64  `json:"budgetGoal"`
	Days       []string `json:"days"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body, false) {
		return
	}

	created, err := s.trips.Create(r.Context(), service.NewTrip{
		Title:      body.Title,
		Currency:   body.Currency,
		BudgetGoal: body.BudgetGoal,
		Themes:     body.Days,
	})
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if !bindQuery(w, r, "page", &page) || !bindQuery(w, r, "limit", &limit) {
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	if trips == nil {
		trips = []domain.TripSummary{}
	}

	writeJSON(w, http.StatusOK, TripList{
		Data: trips,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripId}.
// The body carries per-day stats, the total cost and budget progress.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}

	view, err := s.boards.Get(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, boardToResponse(view))
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}

	if err := s.trips.Delete(r.Context(), tripID); err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// boardResult writes the outcome of a board operation.
func (s *Server) boardResult(w http.ResponseWriter, r *http.Request, status int, view service.BoardView, err error) {
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, status, boardToResponse(view))
}
