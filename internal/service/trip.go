package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/itinerary"
	"github.com/pkordes/tripboard/internal/repo"
)

// NewTrip is the input for TripService.Create.
type NewTrip struct {
	Title      string
	Currency   string // empty means the service default
	BudgetGoal float64
	// Themes creates one day per entry. Empty creates a single untitled day.
	Themes []string
}

// BoardCache is the part of BoardService that TripService keeps in sync.
type BoardCache interface {
	Open(trip domain.Trip)
	Evict(tripID string)
}

// TripService creates, lists and deletes trips. Everything that happens
// inside a trip goes through BoardService.
type TripService struct {
	repo     repo.TripRepo
	boards   BoardCache
	currency string
	now      func() time.Time
}

// NewTripService constructs a TripService. defaultCurrency is used when a new
// trip does not name one.
func NewTripService(r repo.TripRepo, boards BoardCache, defaultCurrency string) *TripService {
	return &TripService{repo: r, boards: boards, currency: defaultCurrency, now: time.Now}
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, in NewTrip) (domain.Trip, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: title is required", domain.ErrValidation)
	}
	if in.Currency == "" {
		in.Currency = s.currency
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := validateCurrency(in.Currency); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if math.IsNaN(in.BudgetGoal) || in.BudgetGoal < 0 {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: budgetGoal must not be negative", domain.ErrValidation)
	}

	themes := in.Themes
	if len(themes) == 0 {
		themes = []string{""}
	}
	now := s.now().UTC()
	trip := domain.Trip{
		ID:         "trip-" + uuid.NewString(),
		Title:      strings.TrimSpace(in.Title),
		Currency:   in.Currency,
		BudgetGoal: in.BudgetGoal,
		Days:       make([]domain.Day, 0, len(themes)),
		TrashBin:   []domain.TrashItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, theme := range themes {
		trip.Days = append(trip.Days, domain.Day{
			ID:         itinerary.PrefixDay + "-" + uuid.NewString(),
			Theme:      strings.TrimSpace(theme),
			Activities: []domain.Activity{},
		})
	}
	// Normalise day numbers and trip ids the same way a loaded trip is.
	trip = itinerary.New(trip).Trip()

	saved, err := s.repo.Save(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.boards.Open(saved)
	return saved, nil
}

// List returns one page of trip summaries and the total count.
// Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.TripSummary{}
	}
	return trips, total, nil
}

// Delete removes a trip and drops its open board.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.boards.Evict(id)
	return nil
}
