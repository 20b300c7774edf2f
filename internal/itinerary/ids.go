package itinerary

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Identifier prefixes for generated ids.
const (
	PrefixDay      = "day"
	PrefixActivity = "act"
	PrefixStay     = "stay"
	PrefixTrash    = "trash"
)

// IDGenerator produces collision-resistant string identifiers.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator returns ids of the form "<prefix>-<uuid>".
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// SequenceGenerator returns ids of the form "<prefix>-<n>" from a single
// monotonic counter shared by all prefixes. Useful where ids must be
// predictable, e.g. fixtures and tests.
type SequenceGenerator struct {
	n atomic.Int64
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID(prefix string) string {
	return prefix + "-" + strconv.FormatInt(g.n.Add(1), 10)
}
