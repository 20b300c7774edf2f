package domain

// SuggestionKind discriminates activity-like from accommodation-like suggestions.
type SuggestionKind string

const (
	SuggestActivity      SuggestionKind = "activity"
	SuggestAccommodation SuggestionKind = "accommodation"
)

// ActivitySuggestion is the minimum an external source must supply for an
// activity-like suggestion.
type ActivitySuggestion struct {
	Title           string       `json:"title" yaml:"title"`
	Location        string       `json:"location" yaml:"location"`
	Description     string       `json:"description" yaml:"description"`
	CostEstimate    float64      `json:"cost_estimate" yaml:"cost_estimate"`
	Category        Category     `json:"category" yaml:"category"`
	DurationMinutes int          `json:"durationMinutes,omitempty" yaml:"durationMinutes,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// AccommodationSuggestion is the minimum an external source must supply for an
// accommodation-like suggestion.
type AccommodationSuggestion struct {
	HotelName     string            `json:"hotelName" yaml:"hotelName"`
	PricePerNight float64           `json:"pricePerNight" yaml:"pricePerNight"`
	Rating        float64           `json:"rating" yaml:"rating"`
	Type          AccommodationType `json:"type,omitempty" yaml:"type,omitempty"`
	Address       string            `json:"address,omitempty" yaml:"address,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Amenities     []string          `json:"amenities,omitempty" yaml:"amenities,omitempty"`
	Images        []string          `json:"images,omitempty" yaml:"images,omitempty"`
}

// Suggestion is a read-only sidebar entry attached to a trip.
type Suggestion struct {
	ID            string                   `json:"id"`
	Kind          SuggestionKind           `json:"kind"`
	Activity      *ActivitySuggestion      `json:"activity,omitempty"`
	Accommodation *AccommodationSuggestion `json:"accommodation,omitempty"`
}

// Clone returns a deep copy of the suggestion.
func (s Suggestion) Clone() Suggestion {
	out := s
	if s.Activity != nil {
		a := *s.Activity
		if a.Coordinates != nil {
			c := *a.Coordinates
			a.Coordinates = &c
		}
		out.Activity = &a
	}
	if s.Accommodation != nil {
		a := *s.Accommodation
		a.Amenities = append([]string(nil), a.Amenities...)
		a.Images = append([]string(nil), a.Images...)
		out.Accommodation = &a
	}
	return out
}

// ToAccommodation builds an Accommodation from the suggestion with the given id.
func (s AccommodationSuggestion) ToAccommodation(id string) Accommodation {
	t := s.Type
	if t == "" {
		t = LodgingHotel
	}
	return Accommodation{
		ID:            id,
		Type:          t,
		HotelName:     s.HotelName,
		Address:       s.Address,
		PricePerNight: s.PricePerNight,
		Rating:        s.Rating,
		BookingStatus: BookingDraft,
		Images:        append([]string(nil), s.Images...),
		Amenities:     append([]string(nil), s.Amenities...),
		Description:   s.Description,
	}
}
