// Package suggest provides sidebar suggestions and automatic stay lookups.
//
// The board only depends on the Source and StayFinder interfaces; Catalog is
// the built-in implementation backed by an embedded YAML document.
package suggest

import (
	"context"

	"github.com/pkordes/tripboard/internal/domain"
)

// Tab selects which kind of suggestion the sidebar is showing.
type Tab string

const (
	TabActivities     Tab = "activities"
	TabAccommodations Tab = "accommodations"
)

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return t == TabActivities || t == TabAccommodations
}

// Query is the sidebar's request. Budget <= 0 means no limit.
type Query struct {
	Tab         Tab
	Destination string
	Vibe        string
	Budget      float64
}

// Source produces suggestions for the sidebar.
type Source interface {
	Suggestions(ctx context.Context, q Query) ([]domain.Suggestion, error)
}

// StayFinder picks a single accommodation for a day.
type StayFinder interface {
	SuggestAccommodation(ctx context.Context, theme string, budget float64) (domain.Accommodation, error)
}
