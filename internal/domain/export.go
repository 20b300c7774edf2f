package domain

// ExportRow is one flat line of an itinerary export: one activity of one day.
// A day without activities contributes a single row with empty activity fields.
type ExportRow struct {
	TripID          string         `json:"tripId"`
	TripTitle       string         `json:"tripTitle"`
	Currency        string         `json:"currency"`
	DayNumber       int            `json:"dayNumber"`
	DayTheme        string         `json:"dayTheme"`
	Time            string         `json:"time,omitempty"`
	ActivityTitle   string         `json:"activityTitle,omitempty"`
	Location        string         `json:"location,omitempty"`
	Category        Category       `json:"category,omitempty"`
	Status          ActivityStatus `json:"status,omitempty"`
	CostEstimate    float64        `json:"cost_estimate"`
	DurationMinutes int            `json:"durationMinutes,omitempty"`
	TravelMinutes   int            `json:"travelMinutes,omitempty"`
	HotelName       string         `json:"hotelName,omitempty"`
	PricePerNight   float64        `json:"pricePerNight,omitempty"`
}
