package handler

import (
	"net/http"

	"github.com/pkordes/tripboard/internal/suggest"
)

// ListSuggestions handles GET /suggestions.
// Supports ?tab=, ?destination=, ?vibe= and ?budget=. A failing source yields
// an empty list, not an error.
func (s *Server) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	var tab, destination, vibe *string
	var budget *float64
	if !bindQuery(w, r, "tab", &tab) ||
		!bindQuery(w, r, "destination", &destination) ||
		!bindQuery(w, r, "vibe", &vibe) ||
		!bindQuery(w, r, "budget", &budget) {
		return
	}

	var q suggest.Query
	if tab != nil {
		q.Tab = suggest.Tab(*tab)
	}
	if destination != nil {
		q.Destination = *destination
	}
	if vibe != nil {
		q.Vibe = *vibe
	}
	if budget != nil {
		q.Budget = *budget
	}

	list, err := s.suggestions.Suggestions(r.Context(), q)
	if err != nil {
		s.serviceError(w, r, err, "suggestion")
		return
	}
	writeJSON(w, http.StatusOK, SuggestionList{Data: list})
}
