// Package itinerary is the mutation engine for a trip board.
//
// Engine is the single owner of a Trip aggregate. Every write goes through one
// of its methods, each of which leaves the trip consistent: affected days are
// re-run through the timeline recalculator, day numbers stay contiguous, and
// nothing is removed without passing through the Trash.
//
// Lookups that fail (unknown day, activity or trash id) are silent no-ops.
// Mutating methods report whether they changed anything.
package itinerary

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/timeline"
)

const (
	// End is the insertion index meaning "append".
	End = -1

	// NewDayTheme is the theme given to days created by AddDay.
	NewDayTheme = "New Day"

	// RestoredDayTheme is the theme of a day created to hold a restored item.
	RestoredDayTheme = "Restored Day"
)

// Engine serialises all mutations of one trip behind a mutex.
// The zero value is not usable; construct with New.
type Engine struct {
	mu       sync.Mutex
	trip     domain.Trip
	trash    *Trash
	selected string
	ids      IDGenerator
	now      func() time.Time
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator overrides the default UUID-based id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithClock overrides time.Now for trash timestamps and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New takes ownership of a deep copy of trip. Day numbers are normalised and
// every day's timeline is recalculated so the engine starts consistent.
func New(trip domain.Trip, opts ...Option) *Engine {
	e := &Engine{
		trip: trip.Clone(),
		ids:  UUIDGenerator{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.log = e.log.With("trip_id", e.trip.ID)

	if e.trip.TrashBin == nil {
		e.trip.TrashBin = []domain.TrashItem{}
	}
	e.trash = newTrash(&e.trip.TrashBin, e.ids, e.now)

	e.trip.Renumber()
	for i := range e.trip.Days {
		e.trip.Days[i].TripID = e.trip.ID
		e.recalculate(i)
	}
	return e
}

// Trip returns a deep copy of the current state.
func (e *Engine) Trip() domain.Trip {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trip.Clone()
}

// TrashItems returns a copy of the trash bin, oldest first.
func (e *Engine) TrashItems() []domain.TrashItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trip.Clone().TrashBin
}

// DayIndex returns the position of the day, or -1.
func (e *Engine) DayIndex(dayID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trip.FindDay(dayID)
}

// LocateActivity returns the day currently owning the activity and its index.
func (e *Engine) LocateActivity(activityID string) (dayID string, index int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.trip.Days {
		if i := d.FindActivity(activityID); i >= 0 {
			return d.ID, i, true
		}
	}
	return "", -1, false
}

// ---- activities ------------------------------------------------------------

// AddActivity inserts a at index (End or out of range appends) in the named
// day. An empty a.ID is replaced with a generated one.
func (e *Engine) AddActivity(dayID string, a domain.Activity, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	a = a.Clone()
	if a.ID == "" {
		a.ID = e.ids.NewID(PrefixActivity)
	}
	day := &e.trip.Days[di]
	day.Activities = insertAt(day.Activities, index, a)
	e.recalculate(di)
	e.touch()

	e.log.Debug("itinerary: activity added", "day_id", dayID, "activity_id", a.ID, "index", index)
	return true
}

// RemoveActivity moves the activity into the trash.
func (e *Engine) RemoveActivity(dayID, activityID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	day := &e.trip.Days[di]
	ai := day.FindActivity(activityID)
	if ai < 0 {
		return false
	}
	removed := day.Activities[ai]
	day.Activities = removeAt(day.Activities, ai)
	e.trash.Record(dayID, activityLabel(removed), removed)
	e.recalculate(di)
	e.touch()

	e.log.Debug("itinerary: activity trashed", "day_id", dayID, "activity_id", activityID)
	return true
}

// ReorderActivity moves the activity at oldIndex to newIndex within one day.
// newIndex is clamped to the list bounds.
func (e *Engine) ReorderActivity(dayID string, oldIndex, newIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	if !e.reorderWithin(di, oldIndex, newIndex) {
		return false
	}
	e.touch()

	e.log.Debug("itinerary: activity reordered", "day_id", dayID, "from", oldIndex, "to", newIndex)
	return true
}

// MoveActivityBetweenDays transfers ownership of an activity from source to
// target at index (End appends) and recalculates both days. When source and
// target are the same day it behaves as a reorder.
func (e *Engine) MoveActivityBetweenDays(sourceDayID, targetDayID, activityID string, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	si := e.trip.FindDay(sourceDayID)
	ti := e.trip.FindDay(targetDayID)
	if si < 0 || ti < 0 {
		return false
	}
	ai := e.trip.Days[si].FindActivity(activityID)
	if ai < 0 {
		return false
	}

	if si == ti {
		to := index
		if to < 0 {
			to = len(e.trip.Days[si].Activities) - 1
		}
		if !e.reorderWithin(si, ai, to) {
			return false
		}
		e.touch()
		return true
	}

	moved := e.trip.Days[si].Activities[ai]
	e.trip.Days[si].Activities = removeAt(e.trip.Days[si].Activities, ai)
	e.trip.Days[ti].Activities = insertAt(e.trip.Days[ti].Activities, index, moved)
	e.recalculate(si)
	e.recalculate(ti)
	e.touch()

	e.log.Debug("itinerary: activity moved",
		"activity_id", activityID, "from_day", sourceDayID, "to_day", targetDayID, "index", index)
	return true
}

// UpdateActivity merges patch into the activity and recalculates its day.
func (e *Engine) UpdateActivity(dayID, activityID string, patch domain.ActivityPatch) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	day := &e.trip.Days[di]
	ai := day.FindActivity(activityID)
	if ai < 0 {
		return false
	}
	day.Activities[ai] = patch.Apply(day.Activities[ai])
	e.recalculate(di)
	e.touch()

	e.log.Debug("itinerary: activity updated", "day_id", dayID, "activity_id", activityID)
	return true
}

// ---- accommodation ---------------------------------------------------------

// SetAccommodation replaces the day's accommodation.
//
// A nil acc trashes the current accommodation, if any, and clears it.
// A non-nil acc overwrites the current one without trashing it.
func (e *Engine) SetAccommodation(dayID string, acc *domain.Accommodation) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	day := &e.trip.Days[di]

	if acc == nil {
		if day.Accommodation == nil {
			return false
		}
		e.trash.Record(dayID, stayLabel(*day.Accommodation), *day.Accommodation)
		day.Accommodation = nil
		e.touch()
		e.log.Debug("itinerary: accommodation trashed", "day_id", dayID)
		return true
	}

	next := acc.Clone()
	if next.ID == "" {
		next.ID = e.ids.NewID(PrefixStay)
	}
	if day.Accommodation != nil {
		// TODO: decide whether a direct replacement should also be trashed;
		// the removal paths trash, this one silently overwrites.
		e.log.Debug("itinerary: accommodation overwritten", "day_id", dayID, "previous_id", day.Accommodation.ID)
	}
	day.Accommodation = &next
	e.touch()

	e.log.Debug("itinerary: accommodation set", "day_id", dayID, "accommodation_id", next.ID)
	return true
}

// RemoveAccommodation is SetAccommodation(dayID, nil).
func (e *Engine) RemoveAccommodation(dayID string) bool {
	return e.SetAccommodation(dayID, nil)
}

// ---- days ------------------------------------------------------------------

// AddDay appends an empty day with the next day number.
func (e *Engine) AddDay() domain.Day {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.appendDay(NewDayTheme)
	e.touch()

	e.log.Debug("itinerary: day added", "day_id", e.trip.Days[di].ID, "day_number", e.trip.Days[di].DayNumber)
	return e.trip.Days[di].Clone()
}

// UpdateDay merges non-temporal fields into the day. No recalculation.
func (e *Engine) UpdateDay(dayID string, patch domain.DayPatch) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	e.trip.Days[di] = patch.Apply(e.trip.Days[di])
	e.touch()

	e.log.Debug("itinerary: day updated", "day_id", dayID)
	return true
}

// DeleteDay trashes the day's accommodation and each of its activities, then
// removes the day and renumbers the rest.
func (e *Engine) DeleteDay(dayID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	di := e.trip.FindDay(dayID)
	if di < 0 {
		return false
	}
	day := e.trip.Days[di]
	if day.Accommodation != nil {
		e.trash.Record(dayID, fromDay(stayLabel(*day.Accommodation), day.DayNumber), *day.Accommodation)
	}
	for _, a := range day.Activities {
		e.trash.Record(dayID, fromDay(activityLabel(a), day.DayNumber), a)
	}

	e.trip.Days = append(e.trip.Days[:di:di], e.trip.Days[di+1:]...)
	e.trip.Renumber()
	if e.selected == dayID {
		e.selected = ""
	}
	e.touch()

	e.log.Debug("itinerary: day deleted", "day_id", dayID, "trashed_activities", len(day.Activities))
	return true
}

// ReorderDays moves the day at oldIndex to newIndex and renumbers every day.
func (e *Engine) ReorderDays(oldIndex, newIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.trip.Days)
	if oldIndex < 0 || oldIndex >= n {
		return false
	}
	newIndex = clamp(newIndex, 0, n-1)
	if oldIndex == newIndex {
		return false
	}
	e.trip.Days = arrayMove(e.trip.Days, oldIndex, newIndex)
	e.trip.Renumber()
	e.touch()

	e.log.Debug("itinerary: days reordered", "from", oldIndex, "to", newIndex)
	return true
}

// SelectDay marks a day as the explicit restore target. An unknown id clears
// the selection.
func (e *Engine) SelectDay(dayID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.trip.FindDay(dayID) < 0 {
		e.selected = ""
		return false
	}
	e.selected = dayID
	return true
}

// ClearSelection forgets the selected day.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = ""
}

// SelectedDay returns the selected day id, or "".
func (e *Engine) SelectedDay() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// ---- trash -----------------------------------------------------------------

// RestoreFromTrash removes the item from the trash and re-attaches its payload.
//
// Target day, first match wins:
//  1. the selected day;
//  2. for accommodations, the last day without one;
//  3. the item's original day;
//  4. the last day;
//  5. a new "Restored Day".
//
// Activities are appended. An accommodation landing on a day that already has
// one gets a new day of its own instead.
func (e *Engine) RestoreFromTrash(trashID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.restorable(trashID) {
		return false
	}
	item, _ := e.trash.Take(trashID)
	di := e.restoreTarget(item)

	switch item.Type {
	case domain.TrashActivity:
		day := &e.trip.Days[di]
		day.Activities = append(day.Activities, item.Activity.Clone())
		e.recalculate(di)
	case domain.TrashAccommodation:
		acc := item.Accommodation.Clone()
		if e.trip.Days[di].Accommodation != nil {
			di = e.appendDay(RestoredDayTheme)
		}
		e.trip.Days[di].Accommodation = &acc
	}
	e.touch()

	e.log.Debug("itinerary: restored from trash",
		"trash_id", trashID, "type", item.Type, "day_id", e.trip.Days[di].ID)
	return true
}

// EmptyTrash permanently discards every trash item and returns the count.
func (e *Engine) EmptyTrash() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.trash.Empty()
	if n > 0 {
		e.touch()
		e.log.Debug("itinerary: trash emptied", "removed", n)
	}
	return n
}

// restorable reports whether the item exists and carries the payload its
// type promises. Items that do not are left in the bin.
func (e *Engine) restorable(trashID string) bool {
	for _, it := range e.trip.TrashBin {
		if it.ID != trashID {
			continue
		}
		switch it.Type {
		case domain.TrashActivity:
			return it.Activity != nil
		case domain.TrashAccommodation:
			return it.Accommodation != nil
		}
		return false
	}
	return false
}

func (e *Engine) restoreTarget(item domain.TrashItem) int {
	if e.selected != "" {
		if di := e.trip.FindDay(e.selected); di >= 0 {
			return di
		}
	}
	if item.Type == domain.TrashAccommodation {
		for i := len(e.trip.Days) - 1; i >= 0; i-- {
			if e.trip.Days[i].Accommodation == nil {
				return i
			}
		}
	}
	if di := e.trip.FindDay(item.OriginalDayID); di >= 0 {
		return di
	}
	if n := len(e.trip.Days); n > 0 {
		return n - 1
	}
	return e.appendDay(RestoredDayTheme)
}

// ---- internals (callers hold e.mu) -----------------------------------------

func (e *Engine) appendDay(theme string) int {
	e.trip.Days = append(e.trip.Days, domain.Day{
		ID:         e.ids.NewID(PrefixDay),
		TripID:     e.trip.ID,
		DayNumber:  len(e.trip.Days) + 1,
		Theme:      theme,
		Activities: []domain.Activity{},
	})
	return len(e.trip.Days) - 1
}

func (e *Engine) reorderWithin(di, oldIndex, newIndex int) bool {
	acts := e.trip.Days[di].Activities
	if oldIndex < 0 || oldIndex >= len(acts) {
		return false
	}
	newIndex = clamp(newIndex, 0, len(acts)-1)
	if oldIndex == newIndex {
		return false
	}
	e.trip.Days[di].Activities = arrayMove(acts, oldIndex, newIndex)
	e.recalculate(di)
	return true
}

func (e *Engine) recalculate(di int) {
	e.trip.Days[di].Activities = timeline.Recalculate(e.trip.Days[di].Activities)
}

func (e *Engine) touch() {
	e.trip.UpdatedAt = e.now().UTC()
}

func insertAt[T any](list []T, index int, v T) []T {
	if index < 0 || index >= len(list) {
		return append(list, v)
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, v)
	return append(out, list[index:]...)
}

func removeAt[T any](list []T, index int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}

// arrayMove returns a copy of list with the element at from moved to to.
func arrayMove[T any](list []T, from, to int) []T {
	v := list[from]
	return insertAt(removeAt(list, from), to, v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
