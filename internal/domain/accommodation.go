package domain

// AccommodationType is the kind of lodging.
type AccommodationType string

const (
	LodgingHotel  AccommodationType = "hotel"
	LodgingBnB    AccommodationType = "bnb"
	LodgingResort AccommodationType = "resort"
)

// Valid reports whether t is a known lodging type. Empty is accepted and
// treated as hotel by consumers.
func (t AccommodationType) Valid() bool {
	switch t {
	case "", LodgingHotel, LodgingBnB, LodgingResort:
		return true
	}
	return false
}

// BookingStatus tracks how far a stay has progressed towards a reservation.
type BookingStatus string

const (
	BookingDraft     BookingStatus = "draft"
	BookingConfirmed BookingStatus = "confirmed"
	BookingBooked    BookingStatus = "booked"
)

// Valid reports whether s is a known booking status (empty means draft).
func (s BookingStatus) Valid() bool {
	switch s {
	case "", BookingDraft, BookingConfirmed, BookingBooked:
		return true
	}
	return false
}

// Accommodation is a lodging choice attached to exactly one day.
// A multi-night stay at the same hotel is stored as independent copies, one
// per day, with no shared identity.
type Accommodation struct {
	ID            string            `json:"id"`
	Type          AccommodationType `json:"type,omitempty"`
	HotelName     string            `json:"hotelName"`
	Address       string            `json:"address,omitempty"`
	PricePerNight float64           `json:"pricePerNight"`
	Rating        float64           `json:"rating"`
	BookingStatus BookingStatus     `json:"bookingStatus,omitempty"`
	ContactURL    string            `json:"contactUrl,omitempty"`
	BookingURL    string            `json:"bookingUrl,omitempty"`
	MapURL        string            `json:"mapUrl,omitempty"`
	Images        []string          `json:"images,omitempty"`
	Amenities     []string          `json:"amenities,omitempty"`
	Description   string            `json:"description,omitempty"`
}

// Clone returns a deep copy of the accommodation.
func (a Accommodation) Clone() Accommodation {
	out := a
	if a.Images != nil {
		out.Images = append([]string(nil), a.Images...)
	}
	if a.Amenities != nil {
		out.Amenities = append([]string(nil), a.Amenities...)
	}
	return out
}
