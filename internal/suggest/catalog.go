package suggest

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/tripboard/internal/domain"
)

//go:embed catalog.yaml
var builtinCatalog []byte

type activityEntry struct {
	domain.ActivitySuggestion `yaml:",inline"`
	Vibes                     []string `yaml:"vibes"`
}

type stayEntry struct {
	domain.AccommodationSuggestion `yaml:",inline"`
	Keywords                       []string `yaml:"keywords"`
}

type destination struct {
	Name       string          `yaml:"name"`
	Aliases    []string        `yaml:"aliases"`
	Activities []activityEntry `yaml:"activities"`
	Stays      []stayEntry     `yaml:"stays"`
}

type catalogFile struct {
	Destinations []destination `yaml:"destinations"`
}

// Catalog is a static, in-memory suggestion source. It is safe for
// concurrent use because it is never mutated after loading.
type Catalog struct {
	destinations []destination
}

var (
	_ Source     = (*Catalog)(nil)
	_ StayFinder = (*Catalog)(nil)
)

// LoadCatalog parses a catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("suggest.LoadCatalog: %w", err)
	}
	for _, d := range f.Destinations {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("suggest.LoadCatalog: destination without a name: %w", domain.ErrValidation)
		}
		for _, a := range d.Activities {
			if !a.Category.Valid() {
				return nil, fmt.Errorf("suggest.LoadCatalog: %s: activity %q has category %q: %w",
					d.Name, a.Title, a.Category, domain.ErrValidation)
			}
		}
	}
	return &Catalog{destinations: f.Destinations}, nil
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(builtinCatalog)
}

// Suggestions returns entries for the destination (all destinations when it
// is empty or unknown), narrowed by vibe and budget. A vibe that matches
// nothing is ignored rather than producing an empty list.
func (c *Catalog) Suggestions(ctx context.Context, q Query) ([]domain.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !q.Tab.Valid() {
		return nil, fmt.Errorf("suggest.Catalog.Suggestions: unknown tab %q: %w", q.Tab, domain.ErrValidation)
	}

	out := []domain.Suggestion{}
	for _, d := range c.match(q.Destination) {
		switch q.Tab {
		case TabActivities:
			out = append(out, activitySuggestions(d, q)...)
		case TabAccommodations:
			out = append(out, staySuggestions(d, q.Budget)...)
		}
	}
	return out, nil
}

// SuggestAccommodation picks the best-rated stay within budget among the
// stays whose keywords appear in theme (every stay when none do). When
// nothing fits the budget the cheapest candidate is returned.
func (c *Catalog) SuggestAccommodation(ctx context.Context, theme string, budget float64) (domain.Accommodation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Accommodation{}, err
	}

	var all, themed []stayEntry
	lower := strings.ToLower(theme)
	for _, d := range c.destinations {
		for _, s := range d.Stays {
			all = append(all, s)
			if lower != "" && (strings.Contains(lower, strings.ToLower(d.Name)) || containsAny(lower, s.Keywords)) {
				themed = append(themed, s)
			}
		}
	}
	candidates := themed
	if len(candidates) == 0 {
		candidates = all
	}
	if len(candidates) == 0 {
		return domain.Accommodation{}, fmt.Errorf("suggest.Catalog.SuggestAccommodation: %w", domain.ErrNotFound)
	}

	var best *stayEntry
	for i := range candidates {
		s := &candidates[i]
		if budget > 0 && s.PricePerNight > budget {
			continue
		}
		if best == nil || s.Rating > best.Rating || (s.Rating == best.Rating && s.PricePerNight < best.PricePerNight) {
			best = s
		}
	}
	if best == nil {
		best = &candidates[0]
		for i := range candidates {
			if candidates[i].PricePerNight < best.PricePerNight {
				best = &candidates[i]
			}
		}
	}
	return best.ToAccommodation(""), nil
}

func (c *Catalog) match(dest string) []destination {
	dest = strings.ToLower(strings.TrimSpace(dest))
	if dest == "" {
		return c.destinations
	}
	for _, d := range c.destinations {
		if strings.ToLower(d.Name) == dest || slices.ContainsFunc(d.Aliases, func(a string) bool {
			return strings.ToLower(a) == dest
		}) {
			return []destination{d}
		}
	}
	return c.destinations
}

func activitySuggestions(d destination, q Query) []domain.Suggestion {
	vibe := strings.ToLower(strings.TrimSpace(q.Vibe))

	var affordable []activityEntry
	for _, a := range d.Activities {
		if q.Budget > 0 && a.CostEstimate > q.Budget {
			continue
		}
		affordable = append(affordable, a)
	}

	picked := affordable
	if vibe != "" {
		var byVibe []activityEntry
		for _, a := range affordable {
			if slices.Contains(a.Vibes, vibe) {
				byVibe = append(byVibe, a)
			}
		}
		if len(byVibe) > 0 {
			picked = byVibe
		}
	}

	out := make([]domain.Suggestion, 0, len(picked))
	for _, a := range picked {
		s := a.ActivitySuggestion
		if s.Coordinates != nil {
			c := *s.Coordinates
			s.Coordinates = &c
		}
		out = append(out, domain.Suggestion{
			ID:       suggestionID(d.Name, domain.SuggestActivity, a.Title),
			Kind:     domain.SuggestActivity,
			Activity: &s,
		})
	}
	return out
}

func staySuggestions(d destination, budget float64) []domain.Suggestion {
	out := []domain.Suggestion{}
	for _, st := range d.Stays {
		if budget > 0 && st.PricePerNight > budget {
			continue
		}
		s := st.AccommodationSuggestion
		s.Amenities = slices.Clone(s.Amenities)
		s.Images = slices.Clone(s.Images)
		out = append(out, domain.Suggestion{
			ID:            suggestionID(d.Name, domain.SuggestAccommodation, st.HotelName),
			Kind:          domain.SuggestAccommodation,
			Accommodation: &s,
		})
	}
	return out
}

// suggestionID is stable across calls so a client can refer back to an entry.
func suggestionID(dest string, kind domain.SuggestionKind, title string) string {
	slug := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), "-")
	}
	return fmt.Sprintf("sug-%s-%s-%s", slug(dest), kind, slug(title))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
