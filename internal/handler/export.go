package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/tripboard/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "currency", "day_number", "day_theme",
	"time", "activity", "location", "category", "status",
	"cost_estimate", "duration_minutes", "travel_minutes",
	"hotel_name", "price_per_night",
}

// ExportTrip handles GET /trips/{tripId}/export.
// It returns one row per activity of the saved itinerary.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	var format *string
	if !bindQuery(w, r, "format", &format) {
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		requestError(w, "format must be csv or json")
		return
	}

	rows, err := s.exports.Export(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}

	if format != nil && *format == "csv" {
		buf := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+tripID+`.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}
	if rows == nil {
		rows = []domain.ExportRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// buildCSV encodes rows with a header line.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(rowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// rowToCSVRecord encodes an ExportRow as a flat string slice.
// Zero durations, travel times and prices are written as empty cells.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripTitle,
		r.Currency,
		strconv.Itoa(r.DayNumber),
		r.DayTheme,
		r.Time,
		r.ActivityTitle,
		r.Location,
		string(r.Category),
		string(r.Status),
		strconv.FormatFloat(r.CostEstimate, 'f', 2, 64),
		optionalInt(r.DurationMinutes),
		optionalInt(r.TravelMinutes),
		r.HotelName,
		optionalAmount(r.PricePerNight),
	}
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func optionalAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
