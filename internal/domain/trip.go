// Package domain contains the core data types for the trip board.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (engine, repo, service, handler).
package domain

import "time"

// Trip is the root aggregate of the board. Days, their activities and
// accommodations, and the trash bin are all owned by value.
//
// Invariant: Days[i].DayNumber == i+1.
type Trip struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Currency    string       `json:"currency"`
	BudgetGoal  float64      `json:"budgetGoal,omitempty"`
	Days        []Day        `json:"days"`
	Suggestions []Suggestion `json:"suggestions,omitempty"` // read-only, sourced externally
	TrashBin    []TrashItem  `json:"trashBin"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Day is one calendar day of the itinerary.
// TripID is a lookup key only; the Trip owns the Day.
type Day struct {
	ID            string         `json:"id"`
	TripID        string         `json:"tripId"`
	DayNumber     int            `json:"dayNumber"`
	Theme         string         `json:"theme"`
	Stats         *Stats         `json:"stats,omitempty"` // derived, never authoritative
	Accommodation *Accommodation `json:"accommodation,omitempty"`
	Activities    []Activity     `json:"activities"`
}

// Stats is the derived per-day aggregate rendered next to each day card.
type Stats struct {
	TotalCost       float64 `json:"totalCost"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	ActivityCount   int     `json:"activityCount"`
}

// FindDay returns the index of the day with the given id, or -1.
func (t *Trip) FindDay(dayID string) int {
	for i := range t.Days {
		if t.Days[i].ID == dayID {
			return i
		}
	}
	return -1
}

// FindActivity returns the index of the activity with the given id, or -1.
func (d *Day) FindActivity(activityID string) int {
	for i := range d.Activities {
		if d.Activities[i].ID == activityID {
			return i
		}
	}
	return -1
}

// Renumber rewrites DayNumber so that it equals position+1 for every day.
func (t *Trip) Renumber() {
	for i := range t.Days {
		t.Days[i].DayNumber = i + 1
	}
}

// ActivityCount returns the number of activities across all days.
func (t Trip) ActivityCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Activities)
	}
	return n
}

// Clone returns a deep copy of the trip. Mutating the copy never affects t.
func (t Trip) Clone() Trip {
	out := t
	out.Days = CloneDays(t.Days)
	if t.Suggestions != nil {
		out.Suggestions = make([]Suggestion, len(t.Suggestions))
		for i, s := range t.Suggestions {
			out.Suggestions[i] = s.Clone()
		}
	}
	if t.TrashBin != nil {
		out.TrashBin = make([]TrashItem, len(t.TrashBin))
		for i, it := range t.TrashBin {
			out.TrashBin[i] = it.Clone()
		}
	}
	return out
}

// WithoutDrafts returns a deep copy of the trip with every draft activity
// removed, including drafts sitting in the trash bin. Drafts are UI-only and
// are never persisted.
func (t Trip) WithoutDrafts() Trip {
	out := t.Clone()
	for i := range out.Days {
		kept := out.Days[i].Activities[:0]
		for _, a := range out.Days[i].Activities {
			if !a.IsDraft {
				kept = append(kept, a)
			}
		}
		out.Days[i].Activities = kept
	}
	trash := out.TrashBin[:0]
	for _, it := range out.TrashBin {
		if it.Activity == nil || !it.Activity.IsDraft {
			trash = append(trash, it)
		}
	}
	out.TrashBin = trash
	return out
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	if d.Stats != nil {
		s := *d.Stats
		out.Stats = &s
	}
	if d.Accommodation != nil {
		a := d.Accommodation.Clone()
		out.Accommodation = &a
	}
	out.Activities = make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		out.Activities[i] = a.Clone()
	}
	return out
}

// CloneDays deep-copies a day sequence.
func CloneDays(days []Day) []Day {
	if days == nil {
		return nil
	}
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}
