// Package budget derives cost and distance aggregates from a trip. Nothing
// here is cached; every figure is recomputed from the state it is given.
package budget

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/geo"
)

// TotalCost sums every day's accommodation price per night (0 when absent)
// and every activity's cost estimate.
func TotalCost(trip domain.Trip) float64 {
	var total float64
	for _, d := range trip.Days {
		total += DayCost(d)
	}
	return total
}

// DayCost is the contribution of one day to TotalCost.
func DayCost(d domain.Day) float64 {
	var total float64
	if d.Accommodation != nil {
		total += d.Accommodation.PricePerNight
	}
	for _, a := range d.Activities {
		total += a.CostEstimate
	}
	return total
}

// DayStats computes the derived stats for one day. Distance counts only legs
// where both endpoints have usable coordinates.
func DayStats(d domain.Day) domain.Stats {
	var km float64
	for i := 1; i < len(d.Activities); i++ {
		if leg, ok := geo.LegKm(d.Activities[i-1].Coordinates, d.Activities[i].Coordinates); ok {
			km += leg
		}
	}
	return domain.Stats{
		TotalCost:       DayCost(d),
		TotalDistanceKm: math.Round(km*10) / 10,
		ActivityCount:   len(d.Activities),
	}
}

// WithStats returns a copy of trip with every day's Stats filled in.
func WithStats(trip domain.Trip) domain.Trip {
	out := trip.Clone()
	for i := range out.Days {
		s := DayStats(out.Days[i])
		out.Days[i].Stats = &s
	}
	return out
}

// Progress returns total as a percentage of goal, or 0 when no goal is set.
func Progress(total, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return total / goal * 100
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders amount in the given ISO 4217 currency, e.g. "$ 300.00".
// Unknown codes fall back to "300.00 XYZ".
func FormatAmount(code string, amount float64) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}
