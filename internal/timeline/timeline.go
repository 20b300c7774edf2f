// Package timeline derives start times, time slots and travel buffers for a
// day's ordered activity list.
package timeline

import (
	"time"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/geo"
)

const (
	// DayStartHour is the wall-clock hour the first activity of a day starts at.
	DayStartHour = 9

	// DefaultDurationMinutes is used for activities without a positive duration.
	DefaultDurationMinutes = 120

	// DisplayLayout formats Activity.Time, e.g. "9:45 AM".
	DisplayLayout = "3:04 PM"

	// SlotLayout formats TimeSlot.Start and TimeSlot.End, e.g. "13:15".
	SlotLayout = "15:04"
)

// Recalculate returns a copy of activities with Time, TimeSlot and
// TravelTimeFromPrev rewritten from the list order, durations and coordinates.
// Every other field passes through unchanged and the order is preserved.
//
// Only wall-clock time matters; the date component of the running clock is
// arbitrary and discarded.
func Recalculate(activities []domain.Activity) []domain.Activity {
	out := make([]domain.Activity, len(activities))
	clock := time.Date(2000, time.January, 1, DayStartHour, 0, 0, 0, time.UTC)

	for i, a := range activities {
		a = a.Clone()

		travel := 0
		if i > 0 {
			travel = geo.TravelOrDefault(activities[i-1].Coordinates, a.Coordinates)
		}
		clock = clock.Add(time.Duration(travel) * time.Minute)
		start := clock

		clock = clock.Add(time.Duration(EffectiveDuration(a)) * time.Minute)

		a.Time = start.Format(DisplayLayout)
		a.TimeSlot = &domain.TimeSlot{
			Start: start.Format(SlotLayout),
			End:   clock.Format(SlotLayout),
		}
		a.TravelTimeFromPrev = travel
		out[i] = a
	}
	return out
}

// EffectiveDuration returns the activity's duration in minutes, or
// DefaultDurationMinutes when unset.
func EffectiveDuration(a domain.Activity) int {
	if a.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return a.DurationMinutes
}
