package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/repo"
)

// ExportService flattens a saved itinerary into rows for download.
// It reads the persisted trip, so drafts and hover previews never appear.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per activity, in day then list order.
// The accommodation columns repeat on every row of its day.
func (s *ExportService) Export(ctx context.Context, tripID string) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return ExportRows(trip), nil
}

// ExportRows flattens trip. The result is never nil.
func ExportRows(trip domain.Trip) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, trip.ActivityCount()+len(trip.Days))
	for _, d := range trip.Days {
		base := domain.ExportRow{
			TripID:    trip.ID,
			TripTitle: trip.Title,
			Currency:  trip.Currency,
			DayNumber: d.DayNumber,
			DayTheme:  d.Theme,
		}
		if d.Accommodation != nil {
			base.HotelName = d.Accommodation.HotelName
			base.PricePerNight = d.Accommodation.PricePerNight
		}
		if len(d.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range d.Activities {
			row := base
			row.Time = a.Time
			row.ActivityTitle = a.Title
			row.Location = a.Location
			row.Category = a.Category
			row.Status = a.Status
			row.CostEstimate = a.CostEstimate
			row.DurationMinutes = a.DurationMinutes
			row.TravelMinutes = a.TravelTimeFromPrev
			rows = append(rows, row)
		}
	}
	return rows
}
