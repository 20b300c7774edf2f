package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/suggest"
)

// SuggestionService fronts the suggestion source for the sidebar.
type SuggestionService struct {
	source suggest.Source
	log    *slog.Logger
}

// NewSuggestionService constructs a SuggestionService. A nil logger uses
// slog.Default().
func NewSuggestionService(src suggest.Source, log *slog.Logger) *SuggestionService {
	if log == nil {
		log = slog.Default()
	}
	return &SuggestionService{source: src, log: log}
}

// Suggestions validates the query and asks the source. A failing source
// yields an empty list, never an error: the sidebar shows nothing and the
// board is unaffected.
func (s *SuggestionService) Suggestions(ctx context.Context, q suggest.Query) ([]domain.Suggestion, error) {
	if q.Tab == "" {
		q.Tab = suggest.TabActivities
	}
	if !q.Tab.Valid() {
		return nil, fmt.Errorf("service.SuggestionService.Suggestions: %w: unknown tab %q", domain.ErrValidation, q.Tab)
	}
	if math.IsNaN(q.Budget) || q.Budget < 0 {
		return nil, fmt.Errorf("service.SuggestionService.Suggestions: %w: budget must not be negative", domain.ErrValidation)
	}

	list, err := s.source.Suggestions(ctx, q)
	if err != nil {
		s.log.WarnContext(ctx, "suggestion source failed", "tab", q.Tab, "destination", q.Destination, "error", err)
		return []domain.Suggestion{}, nil
	}
	if list == nil {
		list = []domain.Suggestion{}
	}
	return list, nil
}
