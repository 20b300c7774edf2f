package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkordes/tripboard/internal/domain"
)

// maxRating is the top of the accommodation rating scale.
const maxRating = 5

// validateActivity requires a title unless the activity is a draft, which
// exists before the user has named it.
func validateActivity(a domain.Activity) error {
	if !a.IsDraft && strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if err := validateCost("cost_estimate", a.CostEstimate); err != nil {
		return err
	}
	if a.Category != "" && !a.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, a.Category)
	}
	if a.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", domain.ErrValidation)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, a.Status)
	}
	return validateCoordinates(a.Coordinates)
}

// validateActivityPatch checks only the fields being changed.
func validateActivityPatch(p domain.ActivityPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if p.CostEstimate != nil {
		if err := validateCost("cost_estimate", *p.CostEstimate); err != nil {
			return err
		}
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *p.Category)
	}
	if p.DurationMinutes != nil && *p.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", domain.ErrValidation)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *p.Status)
	}
	return validateCoordinates(p.Coordinates)
}

func validateAccommodation(a domain.Accommodation) error {
	if strings.TrimSpace(a.HotelName) == "" {
		return fmt.Errorf("%w: hotelName is required", domain.ErrValidation)
	}
	if err := validateCost("pricePerNight", a.PricePerNight); err != nil {
		return err
	}
	if math.IsNaN(a.Rating) || a.Rating < 0 || a.Rating > maxRating {
		return fmt.Errorf("%w: rating must be between 0 and %d", domain.ErrValidation, maxRating)
	}
	if a.Type != "" && !a.Type.Valid() {
		return fmt.Errorf("%w: unknown accommodation type %q", domain.ErrValidation, a.Type)
	}
	if a.BookingStatus != "" && !a.BookingStatus.Valid() {
		return fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, a.BookingStatus)
	}
	return nil
}

// validateCoordinates accepts nil (no location) but rejects points the
// estimator could not use.
func validateCoordinates(c *domain.Coordinates) error {
	if c != nil && !c.Usable() {
		return fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}
	return nil
}

func validateCost(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, field)
	}
	return nil
}

func validateCurrency(code string) error {
	notUpper := func(r rune) bool { return r < 'A' || r > 'Z' }
	if len(code) != 3 || strings.IndexFunc(code, notUpper) >= 0 {
		return fmt.Errorf("%w: currency must be a three-letter ISO code", domain.ErrValidation)
	}
	return nil
}
