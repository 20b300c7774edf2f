package dragdrop_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripboard/internal/dragdrop"
	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/itinerary"
)

// ---- helpers ---------------------------------------------------------------

func newBoard(t *testing.T) (*itinerary.Engine, *dragdrop.Controller) {
	t.Helper()
	trip := domain.Trip{
		ID: "trip-1",
		Days: []domain.Day{
			{ID: "d1", Accommodation: &domain.Accommodation{ID: "h1", HotelName: "Pensao"},
				Activities: []domain.Activity{
					{ID: "a1", Title: "Tram", DurationMinutes: 60},
					{ID: "a2", Title: "Castle", DurationMinutes: 60},
				}},
			{ID: "d2", Activities: []domain.Activity{{ID: "a3", Title: "Tower", DurationMinutes: 60}}},
			{ID: "d3"},
		},
	}
	e := itinerary.New(trip,
		itinerary.WithIDGenerator(&itinerary.SequenceGenerator{}),
		itinerary.WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
	return e, dragdrop.NewController(e)
}

func ids(d domain.Day) []string {
	out := make([]string, len(d.Activities))
	for i, a := range d.Activities {
		out[i] = a.ID
	}
	return out
}

func day(t *testing.T, e *itinerary.Engine, id string) domain.Day {
	t.Helper()
	trip := e.Trip()
	i := trip.FindDay(id)
	require.GreaterOrEqual(t, i, 0, "day %s not found", id)
	return trip.Days[i]
}

func target(kind dragdrop.TargetKind, dayID string) *dragdrop.Target {
	return &dragdrop.Target{Kind: kind, DayID: dayID}
}

func overActivity(dayID, activityID string) *dragdrop.Target {
	return &dragdrop.Target{Kind: dragdrop.TargetActivity, DayID: dayID, ActivityID: activityID}
}

// ---- lifecycle -------------------------------------------------------------

func TestStart_RejectsSecondSession(t *testing.T) {
	_, c := newBoard(t)

	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d1"}))
	assert.ErrorIs(t, c.Start(dragdrop.WholeDay{DayID: "d2"}), dragdrop.ErrSessionActive)
	assert.Equal(t, dragdrop.Dragging, c.State())
}

func TestStart_NilItem(t *testing.T) {
	_, c := newBoard(t)
	assert.ErrorIs(t, c.Start(nil), dragdrop.ErrNoItem)
	assert.Equal(t, dragdrop.Idle, c.State())
}

func TestEventsWhileIdleAreNoops(t *testing.T) {
	e, c := newBoard(t)
	before := e.Trip()

	assert.False(t, c.Over(target(dragdrop.TargetActivityList, "d2")))
	assert.Equal(t, dragdrop.OutcomeIgnored, c.End(target(dragdrop.TargetActivityList, "d2")))
	assert.Equal(t, dragdrop.OutcomeIgnored, c.Cancel())
	assert.Empty(t, cmp.Diff(before, e.Trip()))
}

func TestTransitions(t *testing.T) {
	var seen []string
	e, _ := newBoard(t)
	c := dragdrop.NewController(e, dragdrop.WithObserver(func(from, to dragdrop.State) {
		seen = append(seen, from.String()+">"+to.String())
	}))

	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d1"}))
	c.End(target(dragdrop.TargetDayCard, "d3"))
	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d1"}))
	c.Cancel()

	assert.Equal(t, []string{
		"idle>dragging", "dragging>committing", "committing>idle",
		"idle>dragging", "dragging>cancelled", "cancelled>idle",
	}, seen)
}

func TestActiveAndPreview(t *testing.T) {
	_, c := newBoard(t)

	_, ok := c.Active()
	assert.False(t, ok)

	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a2"}))
	item, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, dragdrop.KindExistingActivity, item.Kind())
	preview, ok := c.Preview().(domain.Activity)
	require.True(t, ok)
	assert.Equal(t, "Castle", preview.Title)

	c.Cancel()
	assert.Nil(t, c.Preview())
}

// ---- existing activity -----------------------------------------------------

func TestOver_MovesAcrossDaysImmediately(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

	assert.True(t, c.Over(target(dragdrop.TargetActivityList, "d2")))

	assert.Equal(t, []string{"a2"}, ids(day(t, e, "d1")))
	assert.Equal(t, []string{"a3", "a1"}, ids(day(t, e, "d2")))
	assert.Equal(t, "9:00 AM", day(t, e, "d1").Activities[0].Time)
}

func TestOver_AtHoveredActivityIndex(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

	assert.True(t, c.Over(overActivity("d2", "a3")))
	assert.Equal(t, []string{"a1", "a3"}, ids(day(t, e, "d2")))
}

func TestOver_SameDayIsDeferred(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

	assert.False(t, c.Over(overActivity("d1", "a2")))
	assert.Equal(t, []string{"a1", "a2"}, ids(day(t, e, "d1")))
}

func TestOver_IgnoresNonActivityItems(t *testing.T) {
	e, c := newBoard(t)
	before := e.Trip()
	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d1"}))

	assert.False(t, c.Over(target(dragdrop.TargetDayCard, "d3")))
	assert.False(t, c.Over(nil))
	assert.Empty(t, cmp.Diff(before, e.Trip()))
}

func TestCancel_RestoresHoverMoves(t *testing.T) {
	e, c := newBoard(t)
	before := e.Trip()
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

	require.True(t, c.Over(target(dragdrop.TargetActivityList, "d2")))
	require.True(t, c.Over(target(dragdrop.TargetActivityList, "d3")))

	assert.Equal(t, dragdrop.OutcomeCancelled, c.Cancel())
	assert.Empty(t, cmp.Diff(before.Days, e.Trip().Days))
	assert.Equal(t, dragdrop.Idle, c.State())
}

func TestOver_OnlyActivityTargetsMove(t *testing.T) {
	for _, kind := range []dragdrop.TargetKind{dragdrop.TargetHotelZone, dragdrop.TargetDayCard} {
		t.Run(string(kind), func(t *testing.T) {
			e, c := newBoard(t)
			before := e.Trip()
			require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

			assert.False(t, c.Over(target(kind, "d3")))
			assert.Empty(t, cmp.Diff(before, e.Trip()))
		})
	}
}

func TestCancel_KeepsChangesMadeDuringDrag(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))
	require.True(t, c.Over(target(dragdrop.TargetActivityList, "d2")))

	require.True(t, e.RemoveActivity("d1", "a2"))
	added := e.AddDay()

	assert.Equal(t, dragdrop.OutcomeCancelled, c.Cancel())

	trip := e.Trip()
	assert.Equal(t, []string{"d1", "d2", "d3", added.ID}, func() []string {
		out := make([]string, len(trip.Days))
		for i, d := range trip.Days {
			out[i] = d.ID
		}
		return out
	}())
	assert.Equal(t, []string{"a1"}, ids(day(t, e, "d1")))
	assert.Equal(t, []string{"a3"}, ids(day(t, e, "d2")))

	trash := e.TrashItems()
	require.Len(t, trash, 1)
	require.True(t, e.RestoreFromTrash(trash[0].ID))
	assert.Equal(t, []string{"a1", "a2"}, ids(day(t, e, "d1")))
	assert.Empty(t, e.TrashItems())
}

func TestCancel_ActivityTrashedDuringDragStaysTrashed(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))
	require.True(t, c.Over(target(dragdrop.TargetActivityList, "d2")))
	require.True(t, e.RemoveActivity("d2", "a1"))

	assert.Equal(t, dragdrop.OutcomeCancelled, c.Cancel())

	_, _, found := e.LocateActivity("a1")
	assert.False(t, found)
	assert.Len(t, e.TrashItems(), 1)
}

func TestEnd_NilTargetCancels(t *testing.T) {
	e, c := newBoard(t)
	before := e.Trip()
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))
	require.True(t, c.Over(target(dragdrop.TargetActivityList, "d2")))

	assert.Equal(t, dragdrop.OutcomeCancelled, c.End(nil))
	assert.Empty(t, cmp.Diff(before.Days, e.Trip().Days))
}

func TestEnd_ReordersWithinDay(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

	assert.Equal(t, dragdrop.OutcomeCommitted, c.End(overActivity("d1", "a2")))
	assert.Equal(t, []string{"a2", "a1"}, ids(day(t, e, "d1")))
}

func TestEnd_KeepsHoverMove(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))
	require.True(t, c.Over(target(dragdrop.TargetActivityList, "d2")))

	assert.Equal(t, dragdrop.OutcomeCommitted, c.End(target(dragdrop.TargetActivityList, "d2")))
	assert.Equal(t, []string{"a3", "a1"}, ids(day(t, e, "d2")))
}

func TestEnd_MovesWhenNoHoverHappened(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a2"}))

	assert.Equal(t, dragdrop.OutcomeCommitted, c.End(target(dragdrop.TargetDayCard, "d3")))
	assert.Equal(t, []string{"a2"}, ids(day(t, e, "d3")))
}

func TestEnd_DropOnItselfIsIgnored(t *testing.T) {
	e, c := newBoard(t)
	before := e.Trip()
	require.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a1"}))

	assert.Equal(t, dragdrop.OutcomeIgnored, c.End(overActivity("d1", "a1")))
	assert.Empty(t, cmp.Diff(before, e.Trip()))
}

// ---- suggestions -----------------------------------------------------------

func TestEnd_SuggestedActivityOntoList(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.SuggestedActivity{
		SuggestionID: "s1",
		Suggestion:   domain.ActivitySuggestion{Title: "Fado night", CostEstimate: 40, Category: domain.CategoryNightlife},
	}))

	assert.Equal(t, dragdrop.OutcomeCommitted, c.End(target(dragdrop.TargetActivityList, "d3")))

	d3 := day(t, e, "d3")
	require.Len(t, d3.Activities, 1)
	got := d3.Activities[0]
	assert.Equal(t, "act-1", got.ID)
	assert.Equal(t, "Fado night", got.Title)
	assert.Equal(t, dragdrop.SuggestionDurationMinutes, got.DurationMinutes)
	assert.Equal(t, domain.StatusPlanned, got.Status)
	assert.Equal(t, "9:00 AM", got.Time, "recalculation replaces the placeholder time")
}

func TestEnd_SuggestedActivityAtHoveredPosition(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.SuggestedActivity{
		Suggestion: domain.ActivitySuggestion{Title: "Pasteis", DurationMinutes: 30},
	}))

	assert.Equal(t, dragdrop.OutcomeCommitted, c.End(overActivity("d1", "a2")))

	d1 := day(t, e, "d1")
	require.Len(t, d1.Activities, 3)
	assert.Equal(t, "Pasteis", d1.Activities[1].Title)
	assert.Equal(t, 30, d1.Activities[1].DurationMinutes)
}

func TestEnd_SuggestedActivityOntoHotelZoneIsIgnored(t *testing.T) {
	e, c := newBoard(t)
	before := e.Trip()
	require.NoError(t, c.Start(dragdrop.SuggestedActivity{Suggestion: domain.ActivitySuggestion{Title: "x"}}))

	assert.Equal(t, dragdrop.OutcomeIgnored, c.End(target(dragdrop.TargetHotelZone, "d3")))
	assert.Empty(t, cmp.Diff(before, e.Trip()))
}

func TestEnd_SuggestedAccommodation(t *testing.T) {
	tests := []struct {
		name    string
		target  *dragdrop.Target
		outcome dragdrop.Outcome
	}{
		{"hotel zone", target(dragdrop.TargetHotelZone, "d3"), dragdrop.OutcomeCommitted},
		{"day card", target(dragdrop.TargetDayCard, "d3"), dragdrop.OutcomeCommitted},
		{"activity list", target(dragdrop.TargetActivityList, "d3"), dragdrop.OutcomeIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, c := newBoard(t)
			require.NoError(t, c.Start(dragdrop.SuggestedAccommodation{
				Suggestion: domain.AccommodationSuggestion{HotelName: "Memmo", PricePerNight: 180},
			}))

			assert.Equal(t, tt.outcome, c.End(tt.target))

			acc := day(t, e, "d3").Accommodation
			if tt.outcome != dragdrop.OutcomeCommitted {
				assert.Nil(t, acc)
				return
			}
			require.NotNil(t, acc)
			assert.Equal(t, "Memmo", acc.HotelName)
			assert.Equal(t, domain.BookingDraft, acc.BookingStatus)
			assert.NotEmpty(t, acc.ID)
		})
	}
}

// ---- whole day -------------------------------------------------------------

func TestEnd_WholeDayReorders(t *testing.T) {
	e, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d3"}))

	assert.Equal(t, dragdrop.OutcomeCommitted, c.End(target(dragdrop.TargetDayCard, "d1")))

	trip := e.Trip()
	require.Len(t, trip.Days, 3)
	assert.Equal(t, "d3", trip.Days[0].ID)
	for i, d := range trip.Days {
		assert.Equal(t, i+1, d.DayNumber)
	}
}

func TestEnd_WholeDayOntoItselfIsIgnored(t *testing.T) {
	_, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d2"}))
	assert.Equal(t, dragdrop.OutcomeIgnored, c.End(target(dragdrop.TargetDayCard, "d2")))
}

func TestNewSessionAfterCommit(t *testing.T) {
	_, c := newBoard(t)
	require.NoError(t, c.Start(dragdrop.WholeDay{DayID: "d1"}))
	c.End(target(dragdrop.TargetDayCard, "d2"))

	assert.NoError(t, c.Start(dragdrop.ExistingActivity{ActivityID: "a3"}))
}
