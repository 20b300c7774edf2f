// Package service contains the application logic of the trip board.
// Services validate inputs, drive the itinerary engine and the drag
// controller, and orchestrate repo calls. No SQL lives here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/tripboard/internal/budget"
	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/dragdrop"
	"github.com/pkordes/tripboard/internal/itinerary"
	"github.com/pkordes/tripboard/internal/repo"
	"github.com/pkordes/tripboard/internal/suggest"
)

// BoardView is the read model returned after every board operation.
type BoardView struct {
	Trip        domain.Trip // days carry Stats
	TotalCost   float64
	Progress    float64
	TotalLabel  string
	SelectedDay string
	Drag        DragStatus
}

// DragStatus describes the board's drag session.
type DragStatus struct {
	State dragdrop.State
	Kind  dragdrop.Kind // empty when idle
}

// board is one open trip: its engine, its drag controller, and the lock that
// makes a mutation and its save atomic for callers.
type board struct {
	mu     sync.Mutex
	engine *itinerary.Engine
	drag   *dragdrop.Controller
}

// BoardService keeps one board per open trip in memory.
type BoardService struct {
	repo  repo.TripRepo
	stays suggest.StayFinder
	log   *slog.Logger
	ids   itinerary.IDGenerator
	now   func() time.Time

	mu     sync.Mutex
	boards map[string]*board
	loads  singleflight.Group
}

var _ BoardCache = (*BoardService)(nil)

// BoardOption configures a BoardService.
type BoardOption func(*BoardService)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) BoardOption {
	return func(s *BoardService) { s.log = l }
}

// WithIDGenerator sets the id source handed to every engine.
func WithIDGenerator(g itinerary.IDGenerator) BoardOption {
	return func(s *BoardService) { s.ids = g }
}

// WithClock sets the clock handed to every engine.
func WithClock(now func() time.Time) BoardOption {
	return func(s *BoardService) { s.now = now }
}

// NewBoardService constructs a BoardService. stays may be nil, in which case
// AutoFindStay reports domain.ErrUnavailable.
func NewBoardService(r repo.TripRepo, stays suggest.StayFinder, opts ...BoardOption) *BoardService {
	s := &BoardService{
		repo:   r,
		stays:  stays,
		ids:    itinerary.UUIDGenerator{},
		now:    time.Now,
		boards: make(map[string]*board),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Get returns the current state of a trip.
func (s *BoardService) Get(ctx context.Context, tripID string) (BoardView, error) {
	b, err := s.load(ctx, tripID)
	if err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.Get: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return s.view(b), nil
}

// Open registers a freshly created trip so it does not need to be reloaded.
func (s *BoardService) Open(trip domain.Trip) {
	b := s.newBoard(trip)
	s.mu.Lock()
	s.boards[trip.ID] = b
	s.mu.Unlock()
}

// Evict drops the in-memory board; the next access reloads it.
func (s *BoardService) Evict(tripID string) {
	s.mu.Lock()
	delete(s.boards, tripID)
	s.mu.Unlock()
}

// ---- days ------------------------------------------------------------------

// AddDay appends an empty day.
func (s *BoardService) AddDay(ctx context.Context, tripID string) (BoardView, error) {
	return s.mutate(ctx, tripID, "AddDay", func(b *board) bool {
		b.engine.AddDay()
		return true
	})
}

// UpdateDay changes a day's theme.
func (s *BoardService) UpdateDay(ctx context.Context, tripID, dayID string, patch domain.DayPatch) (BoardView, error) {
	return s.mutate(ctx, tripID, "UpdateDay", func(b *board) bool {
		return b.engine.UpdateDay(dayID, patch)
	})
}

// DeleteDay removes a day, trashing its contents.
func (s *BoardService) DeleteDay(ctx context.Context, tripID, dayID string) (BoardView, error) {
	return s.mutate(ctx, tripID, "DeleteDay", func(b *board) bool {
		return b.engine.DeleteDay(dayID)
	})
}

// ReorderDays moves a day to a new position.
func (s *BoardService) ReorderDays(ctx context.Context, tripID string, oldIndex, newIndex int) (BoardView, error) {
	return s.mutate(ctx, tripID, "ReorderDays", func(b *board) bool {
		return b.engine.ReorderDays(oldIndex, newIndex)
	})
}

// SelectDay sets the restore target. Selection is not persisted.
func (s *BoardService) SelectDay(ctx context.Context, tripID, dayID string) (BoardView, error) {
	b, err := s.load(ctx, tripID)
	if err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.SelectDay: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if dayID == "" {
		b.engine.ClearSelection()
	} else {
		b.engine.SelectDay(dayID)
	}
	return s.view(b), nil
}

// ---- activities ------------------------------------------------------------

// AddActivity validates a and inserts it at index (itinerary.End appends).
func (s *BoardService) AddActivity(ctx context.Context, tripID, dayID string, a domain.Activity, index int) (BoardView, error) {
	if err := validateActivity(a); err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.AddActivity: %w", err)
	}
	if a.Status == "" {
		a.Status = domain.StatusPlanned
	}
	return s.mutate(ctx, tripID, "AddActivity", func(b *board) bool {
		return b.engine.AddActivity(dayID, a, index)
	})
}

// UpdateActivity validates and applies a partial update.
func (s *BoardService) UpdateActivity(ctx context.Context, tripID, dayID, activityID string, patch domain.ActivityPatch) (BoardView, error) {
	if err := validateActivityPatch(patch); err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.UpdateActivity: %w", err)
	}
	return s.mutate(ctx, tripID, "UpdateActivity", func(b *board) bool {
		return b.engine.UpdateActivity(dayID, activityID, patch)
	})
}

// RemoveActivity moves an activity to the trash.
func (s *BoardService) RemoveActivity(ctx context.Context, tripID, dayID, activityID string) (BoardView, error) {
	return s.mutate(ctx, tripID, "RemoveActivity", func(b *board) bool {
		return b.engine.RemoveActivity(dayID, activityID)
	})
}

// ReorderActivity moves an activity within its day.
func (s *BoardService) ReorderActivity(ctx context.Context, tripID, dayID string, oldIndex, newIndex int) (BoardView, error) {
	return s.mutate(ctx, tripID, "ReorderActivity", func(b *board) bool {
		return b.engine.ReorderActivity(dayID, oldIndex, newIndex)
	})
}

// MoveActivity transfers an activity between days.
func (s *BoardService) MoveActivity(ctx context.Context, tripID, activityID, sourceDayID, targetDayID string, index int) (BoardView, error) {
	return s.mutate(ctx, tripID, "MoveActivity", func(b *board) bool {
		return b.engine.MoveActivityBetweenDays(sourceDayID, targetDayID, activityID, index)
	})
}

// ---- accommodation ---------------------------------------------------------

// SetAccommodation validates acc and places it on the day, replacing any
// existing one.
func (s *BoardService) SetAccommodation(ctx context.Context, tripID, dayID string, acc domain.Accommodation) (BoardView, error) {
	if err := validateAccommodation(acc); err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.SetAccommodation: %w", err)
	}
	if acc.Type == "" {
		acc.Type = domain.LodgingHotel
	}
	if acc.BookingStatus == "" {
		acc.BookingStatus = domain.BookingDraft
	}
	return s.mutate(ctx, tripID, "SetAccommodation", func(b *board) bool {
		return b.engine.SetAccommodation(dayID, &acc)
	})
}

// RemoveAccommodation trashes the day's accommodation.
func (s *BoardService) RemoveAccommodation(ctx context.Context, tripID, dayID string) (BoardView, error) {
	return s.mutate(ctx, tripID, "RemoveAccommodation", func(b *board) bool {
		return b.engine.RemoveAccommodation(dayID)
	})
}

// AutoFindStay asks the stay finder for an accommodation matching the day's
// theme and places it on the day. The finder runs without holding the board
// lock; an unknown day leaves the board unchanged.
func (s *BoardService) AutoFindStay(ctx context.Context, tripID, dayID string, maxPrice float64) (BoardView, error) {
	if maxPrice < 0 {
		return BoardView{}, fmt.Errorf("service.BoardService.AutoFindStay: %w: budget must not be negative", domain.ErrValidation)
	}
	b, err := s.load(ctx, tripID)
	if err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.AutoFindStay: %w", err)
	}

	trip := b.engine.Trip()
	di := trip.FindDay(dayID)
	if di < 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		return s.view(b), nil
	}
	if s.stays == nil {
		return BoardView{}, fmt.Errorf("service.BoardService.AutoFindStay: %w", domain.ErrUnavailable)
	}

	acc, err := s.stays.SuggestAccommodation(ctx, trip.Days[di].Theme, maxPrice)
	if err != nil {
		s.log.WarnContext(ctx, "stay finder failed", "trip_id", tripID, "day_id", dayID, "error", err)
		return BoardView{}, fmt.Errorf("service.BoardService.AutoFindStay: %w: %w", domain.ErrUnavailable, err)
	}
	acc.BookingStatus = domain.BookingDraft
	return s.mutate(ctx, tripID, "AutoFindStay", func(b *board) bool {
		return b.engine.SetAccommodation(dayID, &acc)
	})
}

// ---- trash -----------------------------------------------------------------

// Trash returns the trip's trash bin, oldest first.
func (s *BoardService) Trash(ctx context.Context, tripID string) ([]domain.TrashItem, error) {
	b, err := s.load(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.BoardService.Trash: %w", err)
	}
	return b.engine.TrashItems(), nil
}

// RestoreFromTrash re-attaches a trashed item.
func (s *BoardService) RestoreFromTrash(ctx context.Context, tripID, trashID string) (BoardView, error) {
	return s.mutate(ctx, tripID, "RestoreFromTrash", func(b *board) bool {
		return b.engine.RestoreFromTrash(trashID)
	})
}

// EmptyTrash permanently discards the trash and reports how many items went.
func (s *BoardService) EmptyTrash(ctx context.Context, tripID string) (int, error) {
	var n int
	_, err := s.mutate(ctx, tripID, "EmptyTrash", func(b *board) bool {
		n = b.engine.EmptyTrash()
		return n > 0
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ---- drag session ----------------------------------------------------------

// DragStart begins a drag session on the board.
// Returns dragdrop.ErrSessionActive while another session is in progress.
func (s *BoardService) DragStart(ctx context.Context, tripID string, item dragdrop.Item) (BoardView, error) {
	if err := validateDragItem(item); err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.DragStart: %w", err)
	}
	b, err := s.load(ctx, tripID)
	if err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.DragStart: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.drag.Start(item); err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.DragStart: %w", err)
	}
	return s.view(b), nil
}

// DragOver reports the pointer's current drop zone. Hover moves are
// speculative and are not persisted.
func (s *BoardService) DragOver(ctx context.Context, tripID string, target *dragdrop.Target) (BoardView, error) {
	b, err := s.load(ctx, tripID)
	if err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.DragOver: %w", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drag.Over(target)
	return s.view(b), nil
}

// DragEnd drops the dragged item on target (nil cancels) and persists the
// result.
func (s *BoardService) DragEnd(ctx context.Context, tripID string, target *dragdrop.Target) (dragdrop.Outcome, BoardView, error) {
	var outcome dragdrop.Outcome
	v, err := s.mutate(ctx, tripID, "DragEnd", func(b *board) bool {
		outcome = b.drag.End(target)
		return outcome != dragdrop.OutcomeIgnored
	})
	return outcome, v, err
}

// DragCancel abandons the drag session, rolling back hover moves.
func (s *BoardService) DragCancel(ctx context.Context, tripID string) (dragdrop.Outcome, BoardView, error) {
	var outcome dragdrop.Outcome
	v, err := s.mutate(ctx, tripID, "DragCancel", func(b *board) bool {
		outcome = b.drag.Cancel()
		return outcome != dragdrop.OutcomeIgnored
	})
	return outcome, v, err
}

func validateDragItem(item dragdrop.Item) error {
	switch it := item.(type) {
	case nil:
		return fmt.Errorf("%w: drag item is required", domain.ErrValidation)
	case dragdrop.SuggestedActivity:
		a := domain.Activity{
			Title:           it.Suggestion.Title,
			CostEstimate:    it.Suggestion.CostEstimate,
			Category:        it.Suggestion.Category,
			DurationMinutes: it.Suggestion.DurationMinutes,
			Coordinates:     it.Suggestion.Coordinates,
		}
		return validateActivity(a)
	case dragdrop.SuggestedAccommodation:
		return validateAccommodation(it.Suggestion.ToAccommodation(""))
	case dragdrop.ExistingActivity:
		if it.ActivityID == "" {
			return fmt.Errorf("%w: activityId is required", domain.ErrValidation)
		}
	case dragdrop.WholeDay:
		if it.DayID == "" {
			return fmt.Errorf("%w: dayId is required", domain.ErrValidation)
		}
	}
	return nil
}

// ---- internals -------------------------------------------------------------

// mutate runs fn under the board lock and saves the trip when fn reports a
// change. A failed save evicts the board so the next access reloads the last
// persisted state.
func (s *BoardService) mutate(ctx context.Context, tripID, op string, fn func(*board) bool) (BoardView, error) {
	b, err := s.load(ctx, tripID)
	if err != nil {
		return BoardView{}, fmt.Errorf("service.BoardService.%s: %w", op, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !fn(b) {
		return s.view(b), nil
	}
	if _, err := s.repo.Save(ctx, b.engine.Trip().WithoutDrafts()); err != nil {
		s.Evict(tripID)
		s.log.ErrorContext(ctx, "save failed, board evicted", "trip_id", tripID, "op", op, "error", err)
		return BoardView{}, fmt.Errorf("service.BoardService.%s: %w", op, err)
	}
	return s.view(b), nil
}

// load returns the cached board or reads it from the repo. Concurrent first
// loads of one trip share a single repo call.
func (s *BoardService) load(ctx context.Context, tripID string) (*board, error) {
	if b := s.cached(tripID); b != nil {
		return b, nil
	}

	v, err, _ := s.loads.Do(tripID, func() (any, error) {
		if b := s.cached(tripID); b != nil {
			return b, nil
		}
		trip, err := s.repo.GetByID(ctx, tripID)
		if err != nil {
			return nil, err
		}
		b := s.newBoard(trip)
		s.mu.Lock()
		s.boards[tripID] = b
		s.mu.Unlock()
		s.log.DebugContext(ctx, "board loaded", "trip_id", tripID, "days", len(trip.Days))
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	b, ok := v.(*board)
	if !ok {
		return nil, errors.New("board cache returned an unexpected value")
	}
	return b, nil
}

func (s *BoardService) cached(tripID string) *board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boards[tripID]
}

func (s *BoardService) newBoard(trip domain.Trip) *board {
	log := s.log.With("trip_id", trip.ID)
	e := itinerary.New(trip,
		itinerary.WithIDGenerator(s.ids),
		itinerary.WithClock(s.now),
		itinerary.WithLogger(log),
	)
	return &board{
		engine: e,
		drag:   dragdrop.NewController(e, dragdrop.WithLogger(log)),
	}
}

// view builds the read model. Callers hold b.mu.
func (s *BoardService) view(b *board) BoardView {
	trip := budget.WithStats(b.engine.Trip())
	total := budget.TotalCost(trip)

	status := DragStatus{State: b.drag.State()}
	if item, ok := b.drag.Active(); ok {
		status.Kind = item.Kind()
	}
	return BoardView{
		Trip:        trip,
		TotalCost:   total,
		Progress:    budget.Progress(total, trip.BudgetGoal),
		TotalLabel:  budget.FormatAmount(trip.Currency, total),
		SelectedDay: b.engine.SelectedDay(),
		Drag:        status,
	}
}
