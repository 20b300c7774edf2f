// Package geo estimates distances and travel buffers between activity
// coordinates. All distance calculations use the haversine formula.
package geo

import (
	"math"

	"github.com/pkordes/tripboard/internal/domain"
)

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// KmPerMinute models an effective 30 km/h door-to-door speed.
	KmPerMinute = 0.5

	// OverheadMinutes is the fixed per-leg cost (parking, boarding, walking).
	OverheadMinutes = 15

	// DefaultBufferMinutes is used when a leg cannot be estimated from coordinates.
	DefaultBufferMinutes = 30
)

// DistanceKm returns the great-circle distance between a and b in kilometers.
// Malformed input yields NaN; callers guard with TravelOrDefault.
func DistanceKm(a, b domain.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// TravelMinutes returns ceil(distance/0.5) + 15.
func TravelMinutes(a, b domain.Coordinates) int {
	return int(math.Ceil(DistanceKm(a, b)/KmPerMinute)) + OverheadMinutes
}

// TravelOrDefault returns TravelMinutes(a, b) when both points are present and
// usable, and DefaultBufferMinutes otherwise. It never returns a value derived
// from NaN or Inf.
func TravelOrDefault(a, b *domain.Coordinates) int {
	if a == nil || b == nil || !a.Usable() || !b.Usable() {
		return DefaultBufferMinutes
	}
	d := DistanceKm(*a, *b)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return DefaultBufferMinutes
	}
	return int(math.Ceil(d/KmPerMinute)) + OverheadMinutes
}

// LegKm returns the distance between two optional points and whether it could
// be computed.
func LegKm(a, b *domain.Coordinates) (float64, bool) {
	if a == nil || b == nil || !a.Usable() || !b.Usable() {
		return 0, false
	}
	d := DistanceKm(*a, *b)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, false
	}
	return d, true
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
