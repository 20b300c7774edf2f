// Package handler implements the HTTP API of the trip board.
// All handlers are methods on Server. They are split into resource files
// (trip.go, day.go, activity.go, ...) that share the Server dependencies, and
// are mounted on a chi router by Routes.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/dragdrop"
	"github.com/pkordes/tripboard/internal/service"
	"github.com/pkordes/tripboard/internal/suggest"
)

// TripServicer defines the trip-level operations the handlers depend on.
// Defined here, in the consumer package, so tests can inject a mock.
type TripServicer interface {
	Create(ctx context.Context, in service.NewTrip) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
	Delete(ctx context.Context, id string) error
}

// BoardServicer defines the in-trip operations the handlers depend on.
type BoardServicer interface {
	Get(ctx context.Context, tripID string) (service.BoardView, error)

	AddDay(ctx context.Context, tripID string) (service.BoardView, error)
	UpdateDay(ctx context.Context, tripID, dayID string, patch domain.DayPatch) (service.BoardView, error)
	DeleteDay(ctx context.Context, tripID, dayID string) (service.BoardView, error)
	ReorderDays(ctx context.Context, tripID string, oldIndex, newIndex int) (service.BoardView, error)
	SelectDay(ctx context.Context, tripID, dayID string) (service.BoardView, error)

	AddActivity(ctx context.Context, tripID, dayID string, a domain.Activity, index int) (service.BoardView, error)
	UpdateActivity(ctx context.Context, tripID, dayID, activityID string, patch domain.ActivityPatch) (service.BoardView, error)
	RemoveActivity(ctx context.Context, tripID, dayID, activityID string) (service.BoardView, error)
	ReorderActivity(ctx context.Context, tripID, dayID string, oldIndex, newIndex int) (service.BoardView, error)
	MoveActivity(ctx context.Context, tripID, activityID, sourceDayID, targetDayID string, index int) (service.BoardView, error)

	SetAccommodation(ctx context.Context, tripID, dayID string, acc domain.Accommodation) (service.BoardView, error)
	RemoveAccommodation(ctx context.Context, tripID, dayID string) (service.BoardView, error)
	AutoFindStay(ctx context.Context, tripID, dayID string, maxPrice float64) (service.BoardView, error)

	Trash(ctx context.Context, tripID string) ([]domain.TrashItem, error)
	RestoreFromTrash(ctx context.Context, tripID, trashID string) (service.BoardView, error)
	EmptyTrash(ctx context.Context, tripID string) (int, error)

	DragStart(ctx context.Context, tripID string, item dragdrop.Item) (service.BoardView, error)
	DragOver(ctx context.Context, tripID string, target *dragdrop.Target) (service.BoardView, error)
	DragEnd(ctx context.Context, tripID string, target *dragdrop.Target) (dragdrop.Outcome, service.BoardView, error)
	DragCancel(ctx context.Context, tripID string) (dragdrop.Outcome, service.BoardView, error)
}

// SuggestionServicer defines the sidebar operations the handlers depend on.
type SuggestionServicer interface {
	Suggestions(ctx context.Context, q suggest.Query) ([]domain.Suggestion, error)
}

// ExportServicer defines the export operation the handlers depend on.
type ExportServicer interface {
	Export(ctx context.Context, tripID string) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies. Any servicer may be nil when a test
// only exercises part of the API.
type Server struct {
	trips       TripServicer
	boards      BoardServicer
	suggestions SuggestionServicer
	exports     ExportServicer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil log falls back to slog.Default().
func NewServer(trips TripServicer, boards BoardServicer, suggestions SuggestionServicer, exports ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, boards: boards, suggestions: suggestions, exports: exports, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/suggestions", s.ListSuggestions)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/export", s.ExportTrip)

			r.Post("/days", s.AddDay)
			r.Post("/days/reorder", s.ReorderDays)
			r.Patch("/days/{dayId}", s.UpdateDay)
			r.Delete("/days/{dayId}", s.DeleteDay)
			r.Post("/days/{dayId}/select", s.SelectDay)
			r.Delete("/selection", s.ClearSelection)

			r.Post("/days/{dayId}/activities", s.AddActivity)
			r.Post("/days/{dayId}/activities/reorder", s.ReorderActivities)
			r.Patch("/days/{dayId}/activities/{activityId}", s.UpdateActivity)
			r.Delete("/days/{dayId}/activities/{activityId}", s.RemoveActivity)
			r.Post("/activities/{activityId}/move", s.MoveActivity)

			r.Put("/days/{dayId}/accommodation", s.SetAccommodation)
			r.Delete("/days/{dayId}/accommodation", s.RemoveAccommodation)
			r.Post("/days/{dayId}/accommodation/auto", s.AutoFindStay)

			r.Get("/trash", s.ListTrash)
			r.Delete("/trash", s.EmptyTrash)
			r.Post("/trash/{trashId}/restore", s.RestoreFromTrash)

			r.Post("/drag/start", s.DragStart)
			r.Post("/drag/over", s.DragOver)
			r.Post("/drag/end", s.DragEnd)
			r.Post("/drag/cancel", s.DragCancel)
		})
	})
}

// Handler returns a chi router with every endpoint mounted and no middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
