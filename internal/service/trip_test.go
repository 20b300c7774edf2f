package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/repo"
	"github.com/pkordes/tripboard/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones a test needs.
type mockTripRepo struct {
	getByID   func(ctx context.Context, id string) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
	save      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id string) error
}

func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.save(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// memRepo backs a mockTripRepo with a map and records saves.
type memRepo struct {
	mu     sync.Mutex
	trips  map[string]domain.Trip
	saves  []domain.Trip
	loads  int
	failOn error
}

func newMemRepo(trips ...domain.Trip) *memRepo {
	m := &memRepo{trips: map[string]domain.Trip{}}
	for _, t := range trips {
		m.trips[t.ID] = t.Clone()
	}
	return m
}

func (m *memRepo) repo() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id string) (domain.Trip, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.loads++
			t, ok := m.trips[id]
			if !ok {
				return domain.Trip{}, domain.ErrNotFound
			}
			return t.Clone(), nil
		},
		save: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.failOn != nil {
				return domain.Trip{}, m.failOn
			}
			m.trips[t.ID] = t.Clone()
			m.saves = append(m.saves, t.Clone())
			return t, nil
		},
		delete: func(_ context.Context, id string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.trips[id]; !ok {
				return domain.ErrNotFound
			}
			delete(m.trips, id)
			return nil
		},
	}
}

func (m *memRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *memRepo) lastSaved(t *testing.T) domain.Trip {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.saves, "nothing was saved")
	return m.saves[len(m.saves)-1]
}

// fakeBoards records Open/Evict calls from TripService.
type fakeBoards struct {
	opened  []string
	evicted []string
}

func (f *fakeBoards) Open(trip domain.Trip) { f.opened = append(f.opened, trip.ID) }
func (f *fakeBoards) Evict(id string)       { f.evicted = append(f.evicted, id) }

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	mem := newMemRepo()
	boards := &fakeBoards{}
	svc := service.NewTripService(mem.repo(), boards, "USD")

	got, err := svc.Create(context.Background(), service.NewTrip{
		Title:  "  Lisbon  ",
		Themes: []string{"Old town", "Belem", "Sintra"},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.ID, "trip-"))
	assert.Equal(t, "Lisbon", got.Title)
	assert.Equal(t, "USD", got.Currency)
	require.Len(t, got.Days, 3)
	for i, d := range got.Days {
		assert.Equal(t, i+1, d.DayNumber)
		assert.Equal(t, got.ID, d.TripID)
		assert.NotEmpty(t, d.ID)
	}
	assert.Equal(t, "Belem", got.Days[1].Theme)
	assert.NotNil(t, got.TrashBin)
	assert.Equal(t, []string{got.ID}, boards.opened)
	assert.Equal(t, 1, mem.saveCount())
}

func TestTripService_Create_DefaultsToOneDay(t *testing.T) {
	svc := service.NewTripService(newMemRepo().repo(), &fakeBoards{}, "EUR")

	got, err := svc.Create(context.Background(), service.NewTrip{Title: "Weekend", Currency: "gbp"})

	require.NoError(t, err)
	assert.Equal(t, "GBP", got.Currency)
	assert.Len(t, got.Days, 1)
}

func TestTripService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   service.NewTrip
	}{
		{"blank title", service.NewTrip{Title: "   "}},
		{"bad currency", service.NewTrip{Title: "x", Currency: "EURO"}},
		{"digits in currency", service.NewTrip{Title: "x", Currency: "U5D"}},
		{"negative goal", service.NewTrip{Title: "x", BudgetGoal: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMemRepo()
			svc := service.NewTripService(mem.repo(), &fakeBoards{}, "USD")

			_, err := svc.Create(context.Background(), tt.in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, mem.saveCount())
		})
	}
}

func TestTripService_Create_RepoError(t *testing.T) {
	mem := newMemRepo()
	mem.failOn = errors.New("db down")
	boards := &fakeBoards{}
	svc := service.NewTripService(mem.repo(), boards, "USD")

	_, err := svc.Create(context.Background(), service.NewTrip{Title: "x"})

	require.Error(t, err)
	assert.Empty(t, boards.opened, "board is only opened after a successful save")
}

// ---- List ------------------------------------------------------------------

func TestTripService_List_NilBecomesEmpty(t *testing.T) {
	r := &mockTripRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.TripSummary, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewTripService(r, &fakeBoards{}, "USD")

	got, total, err := svc.List(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

func TestTripService_List_PassesPagination(t *testing.T) {
	var seen domain.PaginationParams
	r := &mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
			seen = p
			return []domain.TripSummary{{ID: "t1"}}, 41, nil
		},
	}
	svc := service.NewTripService(r, &fakeBoards{}, "USD")
	page, limit := 3, 10

	got, total, err := svc.List(context.Background(), domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(41), total)
	assert.Equal(t, 20, seen.Offset())
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_EvictsBoard(t *testing.T) {
	mem := newMemRepo(domain.Trip{ID: "t1"})
	boards := &fakeBoards{}
	svc := service.NewTripService(mem.repo(), boards, "USD")

	require.NoError(t, svc.Delete(context.Background(), "t1"))
	assert.Equal(t, []string{"t1"}, boards.evicted)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	boards := &fakeBoards{}
	svc := service.NewTripService(newMemRepo().repo(), boards, "USD")

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, boards.evicted)
}
