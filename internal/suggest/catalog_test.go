package suggest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/suggest"
)

func defaultCatalog(t *testing.T) *suggest.Catalog {
	t.Helper()
	c, err := suggest.DefaultCatalog()
	require.NoError(t, err)
	return c
}

func titles(list []domain.Suggestion) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		switch s.Kind {
		case domain.SuggestActivity:
			out = append(out, s.Activity.Title)
		case domain.SuggestAccommodation:
			out = append(out, s.Accommodation.HotelName)
		}
	}
	return out
}

// ---- loading ---------------------------------------------------------------

func TestDefaultCatalog_Loads(t *testing.T) {
	c := defaultCatalog(t)

	got, err := c.Suggestions(context.Background(), suggest.Query{Tab: suggest.TabActivities})
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	for _, s := range got {
		require.NotNil(t, s.Activity)
		assert.NotEmpty(t, s.Activity.Title)
		assert.True(t, s.Activity.Category.Valid(), s.Activity.Title)
	}
}

func TestLoadCatalog_RejectsUnknownCategory(t *testing.T) {
	doc := []byte(`
destinations:
  - name: Nowhere
    activities:
      - title: Thing
        category: Shopping
`)
	_, err := suggest.LoadCatalog(doc)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := suggest.LoadCatalog([]byte("destinations:\n  - name: X\n    colour: red\n"))
	assert.Error(t, err)
}

func TestLoadCatalog_RejectsMissingName(t *testing.T) {
	_, err := suggest.LoadCatalog([]byte("destinations:\n  - aliases: [x]\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- suggestions -----------------------------------------------------------

func TestSuggestions_FiltersByDestination(t *testing.T) {
	c := defaultCatalog(t)

	got, err := c.Suggestions(context.Background(), suggest.Query{Tab: suggest.TabAccommodations, Destination: "LISBOA"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Memmo Alfama", "Casa do Largo", "Sintra Hills Resort"}, titles(got))
}

func TestSuggestions_FiltersByBudget(t *testing.T) {
	c := defaultCatalog(t)

	got, err := c.Suggestions(context.Background(), suggest.Query{Tab: suggest.TabAccommodations, Destination: "Lisbon", Budget: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"Casa do Largo"}, titles(got))
}

func TestSuggestions_FiltersByVibe(t *testing.T) {
	c := defaultCatalog(t)

	got, err := c.Suggestions(context.Background(), suggest.Query{Tab: suggest.TabActivities, Destination: "Tokyo", Vibe: "Nightlife"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Golden Gai bar hop"}, titles(got))
}

func TestSuggestions_UnmatchedVibeIsIgnored(t *testing.T) {
	c := defaultCatalog(t)

	got, err := c.Suggestions(context.Background(), suggest.Query{Tab: suggest.TabActivities, Destination: "Tokyo", Vibe: "opera"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSuggestions_StableIDs(t *testing.T) {
	c := defaultCatalog(t)
	q := suggest.Query{Tab: suggest.TabActivities, Destination: "Lisbon"}

	first, err := c.Suggestions(context.Background(), q)
	require.NoError(t, err)
	second, err := c.Suggestions(context.Background(), q)
	require.NoError(t, err)

	require.NotEmpty(t, first)
	assert.Equal(t, "sug-lisbon-activity-tram-28-ride", first[0].ID)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestSuggestions_UnknownTab(t *testing.T) {
	c := defaultCatalog(t)

	_, err := c.Suggestions(context.Background(), suggest.Query{Tab: "maps"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSuggestions_CancelledContext(t *testing.T) {
	c := defaultCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Suggestions(ctx, suggest.Query{Tab: suggest.TabActivities})
	assert.ErrorIs(t, err, context.Canceled)
}

// ---- stay finder -----------------------------------------------------------

func TestSuggestAccommodation(t *testing.T) {
	tests := []struct {
		name   string
		theme  string
		budget float64
		want   string
	}{
		{"theme match within budget", "Old town wander", 200, "Memmo Alfama"},
		{"theme match tight budget", "Old town wander", 100, "Casa do Largo"},
		{"nothing fits budget returns cheapest", "Sintra palace day", 50, "Sintra Hills Resort"},
		{"no theme match uses every stay", "Rainy afternoon", 0, "Sintra Hills Resort"},
		{"no budget limit", "Shinjuku nights", 0, "Shinjuku Granbell"},
	}
	c := defaultCatalog(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := c.SuggestAccommodation(context.Background(), tt.theme, tt.budget)
			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.HotelName)
			assert.Equal(t, domain.BookingDraft, acc.BookingStatus)
			assert.Empty(t, acc.ID)
		})
	}
}

func TestSuggestAccommodation_EmptyCatalog(t *testing.T) {
	c, err := suggest.LoadCatalog([]byte("destinations: []\n"))
	require.NoError(t, err)

	_, err = c.SuggestAccommodation(context.Background(), "anything", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
