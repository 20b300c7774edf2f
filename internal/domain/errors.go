package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist. Handlers should map this to HTTP 404.
//
// The itinerary engine never returns it: unresolved day, activity and trash
// ids inside a trip are silent no-ops.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. negative cost, unknown category, rating above 5).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnavailable is returned when an external collaborator (such as the
// accommodation finder) cannot produce a result. Handlers map it to HTTP 503.
var ErrUnavailable = errors.New("collaborator unavailable")
