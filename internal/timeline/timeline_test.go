package timeline_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/geo"
	"github.com/pkordes/tripboard/internal/timeline"
)

// ---- helpers ---------------------------------------------------------------

func coords(lat, lng float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lng: lng}
}

// northOf returns a point km kilometers due north of c.
func northOf(c *domain.Coordinates, km float64) *domain.Coordinates {
	return coords(c.Lat+km/geo.EarthRadiusKm*180/math.Pi, c.Lng)
}

func mixedDay() []domain.Activity {
	x := coords(45, 7)
	return []domain.Activity{
		{ID: "a", Title: "Museum", DurationMinutes: 60, Coordinates: x, CostEstimate: 20},
		{ID: "b", Title: "Lunch", DurationMinutes: 45, Coordinates: northOf(x, 4.9)},
		{ID: "c", Title: "Market", Category: domain.CategoryFood},
		{ID: "d", Title: "Bar", DurationMinutes: 90, Coordinates: coords(45.1, 7.1)},
	}
}

// ---- scenarios -------------------------------------------------------------

// TestRecalculate_TwoDistantStops reproduces the 90 km example: A at 09:00 for
// 60 minutes, then a 195 minute transfer to B.
func TestRecalculate_TwoDistantStops(t *testing.T) {
	x := coords(45, 7)
	acts := []domain.Activity{
		{ID: "A", DurationMinutes: 60, Coordinates: x},
		{ID: "B", DurationMinutes: 45, Coordinates: northOf(x, 89.9)},
	}

	got := timeline.Recalculate(acts)

	require.Len(t, got, 2)
	assert.Equal(t, "9:00 AM", got[0].Time)
	assert.Equal(t, 0, got[0].TravelTimeFromPrev)
	assert.Equal(t, &domain.TimeSlot{Start: "09:00", End: "10:00"}, got[0].TimeSlot)

	assert.Equal(t, 195, got[1].TravelTimeFromPrev)
	assert.Equal(t, "1:15 PM", got[1].Time)
	assert.Equal(t, &domain.TimeSlot{Start: "13:15", End: "14:00"}, got[1].TimeSlot)
}

func TestRecalculate_MissingCoordinatesUseDefaultBuffer(t *testing.T) {
	acts := []domain.Activity{
		{ID: "a", DurationMinutes: 30},
		{ID: "b", DurationMinutes: 30, Coordinates: coords(1, 1)},
	}

	got := timeline.Recalculate(acts)

	assert.Equal(t, geo.DefaultBufferMinutes, got[1].TravelTimeFromPrev)
	assert.Equal(t, "10:00 AM", got[1].Time)
}

func TestRecalculate_MalformedCoordinatesNeverLeakNaN(t *testing.T) {
	acts := []domain.Activity{
		{ID: "a", DurationMinutes: 30, Coordinates: coords(math.NaN(), 3)},
		{ID: "b", DurationMinutes: 30, Coordinates: coords(1, 1)},
	}

	got := timeline.Recalculate(acts)

	assert.Equal(t, geo.DefaultBufferMinutes, got[1].TravelTimeFromPrev)
	assert.Equal(t, "10:00", got[1].TimeSlot.Start)
}

func TestRecalculate_DefaultDuration(t *testing.T) {
	got := timeline.Recalculate([]domain.Activity{{ID: "a"}})

	assert.Equal(t, "11:00", got[0].TimeSlot.End)
}

func TestRecalculate_Empty(t *testing.T) {
	assert.Empty(t, timeline.Recalculate(nil))
}

// ---- properties ------------------------------------------------------------

func TestRecalculate_Idempotent(t *testing.T) {
	once := timeline.Recalculate(mixedDay())
	twice := timeline.Recalculate(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second pass changed the timeline (-once +twice):\n%s", diff)
	}
}

func TestRecalculate_IgnoresStaleDerivedFields(t *testing.T) {
	stale := mixedDay()
	stale[1].Time = "11:11 PM"
	stale[1].TravelTimeFromPrev = 999
	stale[1].TimeSlot = &domain.TimeSlot{Start: "23:11", End: "23:59"}

	assert.Empty(t, cmp.Diff(timeline.Recalculate(mixedDay()), timeline.Recalculate(stale)))
}

func TestRecalculate_PreservesOrderAndNonDerivedFields(t *testing.T) {
	in := mixedDay()
	got := timeline.Recalculate(in)

	require.Len(t, got, len(in))
	for i := range in {
		want := in[i]
		have := got[i]
		have.Time, have.TimeSlot, have.TravelTimeFromPrev = "", nil, 0
		assert.Empty(t, cmp.Diff(want, have), "activity %d", i)
	}
}

func TestRecalculate_DoesNotMutateInput(t *testing.T) {
	in := mixedDay()
	_ = timeline.Recalculate(in)

	for _, a := range in {
		assert.Empty(t, a.Time)
		assert.Nil(t, a.TimeSlot)
	}
}

func TestRecalculate_MonotonicStarts(t *testing.T) {
	got := timeline.Recalculate(mixedDay())
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].TimeSlot.Start, got[i-1].TimeSlot.End,
			"activity %d starts before the previous one ends", i)
	}
}
