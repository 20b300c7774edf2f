// Package dragdrop turns a continuous drag gesture into discrete itinerary
// mutations: a speculative move while hovering, a commit on drop, and a
// rollback on cancel.
package dragdrop

import "github.com/pkordes/tripboard/internal/domain"

// Kind names the semantic kind of a dragged item.
type Kind string

const (
	KindSuggestedActivity      Kind = "new-activity-from-suggestion"
	KindSuggestedAccommodation Kind = "new-accommodation-from-suggestion"
	KindExistingActivity       Kind = "existing-activity"
	KindWholeDay               Kind = "whole-day"
)

// Item is what is being dragged. It is one of SuggestedActivity,
// SuggestedAccommodation, ExistingActivity or WholeDay.
type Item interface {
	Kind() Kind
	isItem()
}

// SuggestedActivity is a sidebar activity suggestion being dragged onto a day.
type SuggestedActivity struct {
	SuggestionID string
	Suggestion   domain.ActivitySuggestion
}

// SuggestedAccommodation is a sidebar stay suggestion being dragged onto a day.
type SuggestedAccommodation struct {
	SuggestionID string
	Suggestion   domain.AccommodationSuggestion
}

// ExistingActivity is an activity already on the board.
type ExistingActivity struct {
	ActivityID string
}

// WholeDay is a day card being dragged to a new position.
type WholeDay struct {
	DayID string
}

func (SuggestedActivity) Kind() Kind      { return KindSuggestedActivity }
func (SuggestedAccommodation) Kind() Kind { return KindSuggestedAccommodation }
func (ExistingActivity) Kind() Kind       { return KindExistingActivity }
func (WholeDay) Kind() Kind               { return KindWholeDay }

func (SuggestedActivity) isItem()      {}
func (SuggestedAccommodation) isItem() {}
func (ExistingActivity) isItem()       {}
func (WholeDay) isItem()               {}

// TargetKind names the kind of drop zone under the pointer.
type TargetKind string

const (
	TargetActivityList TargetKind = "activity-list"
	TargetHotelZone    TargetKind = "hotel-zone"
	TargetDayCard      TargetKind = "day-card"
	TargetActivity     TargetKind = "activity"
)

// Target is a drop zone. ActivityID is set only for TargetActivity.
// A nil *Target means the pointer is over nothing droppable.
type Target struct {
	Kind       TargetKind `json:"kind"`
	DayID      string     `json:"dayId"`
	ActivityID string     `json:"activityId,omitempty"`
}

// FlexibleTime is the placeholder display time of an activity created from a
// suggestion until the day is recalculated.
const FlexibleTime = "Flexible"

// SuggestionDurationMinutes is used when a suggestion carries no duration.
const SuggestionDurationMinutes = 90

// newActivity builds a fresh activity from a suggestion. The id is left empty
// for the engine to generate.
func newActivity(s domain.ActivitySuggestion) domain.Activity {
	dur := s.DurationMinutes
	if dur <= 0 {
		dur = SuggestionDurationMinutes
	}
	a := domain.Activity{
		Title:           s.Title,
		Location:        s.Location,
		Description:     s.Description,
		CostEstimate:    s.CostEstimate,
		Category:        s.Category,
		DurationMinutes: dur,
		Status:          domain.StatusPlanned,
		Time:            FlexibleTime,
	}
	if s.Coordinates != nil {
		c := *s.Coordinates
		a.Coordinates = &c
	}
	return a
}
