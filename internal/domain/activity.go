package domain

import (
	"math"
	"strings"
)

// Category classifies an activity.
type Category string

const (
	CategoryFood        Category = "Food"
	CategorySightseeing Category = "Sightseeing"
	CategoryAdventure   Category = "Adventure"
	CategoryRelaxation  Category = "Relaxation"
	CategoryTransport   Category = "Transport"
	CategoryNightlife   Category = "Nightlife"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategorySightseeing, CategoryAdventure,
		CategoryRelaxation, CategoryTransport, CategoryNightlife:
		return true
	}
	return false
}

// ActivityStatus is the lifecycle state of a scheduled stop.
type ActivityStatus string

const (
	StatusPlanned   ActivityStatus = "planned"
	StatusCompleted ActivityStatus = "completed"
	StatusSkipped   ActivityStatus = "skipped"
)

// Valid reports whether s is a known status. The empty status is treated as planned.
func (s ActivityStatus) Valid() bool {
	switch s {
	case "", StatusPlanned, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Usable reports whether both components are finite and inside the valid
// latitude/longitude ranges.
func (c Coordinates) Usable() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// TimeSlot is the derived start/end wall-clock pair ("15:04").
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Activity is a single scheduled stop within a day.
//
// Time, TimeSlot and TravelTimeFromPrev are derived by the timeline
// recalculator and are overwritten on every recalculation.
type Activity struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Location        string         `json:"location"`
	Description     string         `json:"description"`
	CostEstimate    float64        `json:"cost_estimate"`
	Category        Category       `json:"category"`
	DurationMinutes int            `json:"durationMinutes,omitempty"`
	Coordinates     *Coordinates   `json:"coordinates,omitempty"`
	Status          ActivityStatus `json:"status,omitempty"`
	IsDraft         bool           `json:"isDraft,omitempty"`

	Time               string    `json:"time,omitempty"`
	TimeSlot           *TimeSlot `json:"timeSlot,omitempty"`
	TravelTimeFromPrev int       `json:"travelTimeFromPrev"`
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	out := a
	if a.Coordinates != nil {
		c := *a.Coordinates
		out.Coordinates = &c
	}
	if a.TimeSlot != nil {
		ts := *a.TimeSlot
		out.TimeSlot = &ts
	}
	return out
}

// ActivityPatch carries a partial update for an activity.
// Nil fields are left untouched.
type ActivityPatch struct {
	Title           *string         `json:"title,omitempty"`
	Location        *string         `json:"location,omitempty"`
	Description     *string         `json:"description,omitempty"`
	CostEstimate    *float64        `json:"cost_estimate,omitempty"`
	Category        *Category       `json:"category,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Coordinates     *Coordinates    `json:"coordinates,omitempty"`
	Status          *ActivityStatus `json:"status,omitempty"`
	IsDraft         *bool           `json:"isDraft,omitempty"`
}

// Apply merges the non-nil fields of p into a and returns the result.
// Giving a draft a non-blank title promotes it to a real activity unless the
// patch sets IsDraft itself.
func (p ActivityPatch) Apply(a Activity) Activity {
	if p.Title != nil {
		a.Title = *p.Title
		if p.IsDraft == nil && strings.TrimSpace(a.Title) != "" {
			a.IsDraft = false
		}
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.CostEstimate != nil {
		a.CostEstimate = *p.CostEstimate
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.DurationMinutes != nil {
		a.DurationMinutes = *p.DurationMinutes
	}
	if p.Coordinates != nil {
		c := *p.Coordinates
		a.Coordinates = &c
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.IsDraft != nil {
		a.IsDraft = *p.IsDraft
	}
	return a
}

// DayPatch carries a partial update for a day's non-temporal fields.
type DayPatch struct {
	Theme *string `json:"theme,omitempty"`
}

// Apply merges the non-nil fields of p into d and returns the result.
func (p DayPatch) Apply(d Day) Day {
	if p.Theme != nil {
		d.Theme = *p.Theme
	}
	return d
}
