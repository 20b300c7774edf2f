// Package repo contains all database access logic for the trip board.
// A trip is stored as one JSONB document plus a few denormalised columns used
// by the list view. No itinerary rules live here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tripboard/internal/budget"
	"github.com/pkordes/tripboard/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for trip documents.
// The service layer depends on this interface, not the Postgres implementation.
type TripRepo interface {
	// GetByID loads a trip document. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// ListPaged returns one page of trip summaries, most recently updated
	// first, and the total number of trips.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error)

	// Save inserts or replaces the trip document and returns it with the
	// database timestamps.
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	const q = `
		SELECT document, created_at, updated_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns summaries ordered by updated_at descending.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	const countQ = `SELECT count(*) FROM trips`
	const q = `
		SELECT id, title, currency, day_count, total_cost
		FROM trips
		ORDER BY updated_at DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.TripSummary{}
	for rows.Next() {
		var s domain.TripSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Currency, &s.DayCount, &s.TotalCost); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

// Save upserts the trip. created_at is preserved on conflict.
func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (id, title, currency, day_count, total_cost, document)
		VALUES (@id, @title, @currency, @day_count, @total_cost, @document)
		ON CONFLICT (id) DO UPDATE
		SET title      = EXCLUDED.title,
		    currency   = EXCLUDED.currency,
		    day_count  = EXCLUDED.day_count,
		    total_cost = EXCLUDED.total_cost,
		    document   = EXCLUDED.document,
		    updated_at = now()
		RETURNING document, created_at, updated_at`

	doc, err := json.Marshal(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: encode: %w", err)
	}

	args := pgx.NamedArgs{
		"id":         trip.ID,
		"title":      trip.Title,
		"currency":   trip.Currency,
		"day_count":  len(trip.Days),
		"total_cost": budget.TotalCost(trip),
		"document":   doc,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip decodes the document column. The row timestamps win over any
// stored in the document.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		doc       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := s.Scan(&doc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	var t domain.Trip
	if err := json.Unmarshal(doc, &t); err != nil {
		return domain.Trip{}, fmt.Errorf("decode document: %w", err)
	}
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt
	if t.Days == nil {
		t.Days = []domain.Day{}
	}
	if t.TrashBin == nil {
		t.TrashBin = []domain.TrashItem{}
	}
	return t, nil
}
