package itinerary

import (
	"fmt"
	"time"

	"github.com/pkordes/tripboard/internal/domain"
)

// Trash is the single place removed activities and accommodations pass
// through. It appends to and takes from a bin owned by the trip aggregate.
type Trash struct {
	bin *[]domain.TrashItem
	ids IDGenerator
	now func() time.Time
}

func newTrash(bin *[]domain.TrashItem, ids IDGenerator, now func() time.Time) *Trash {
	return &Trash{bin: bin, ids: ids, now: now}
}

// Record wraps payload (a domain.Activity or domain.Accommodation) in a new
// trash item and appends it to the bin. Any other payload type panics.
func (t *Trash) Record(originDayID, description string, payload any) domain.TrashItem {
	item := domain.TrashItem{
		ID:            t.ids.NewID(PrefixTrash),
		OriginalDayID: originDayID,
		Description:   description,
		DeletedAt:     t.now().UTC(),
	}
	switch p := payload.(type) {
	case domain.Activity:
		a := p.Clone()
		item.Type = domain.TrashActivity
		item.Activity = &a
	case domain.Accommodation:
		a := p.Clone()
		item.Type = domain.TrashAccommodation
		item.Accommodation = &a
	default:
		panic(fmt.Sprintf("itinerary: cannot trash %T", payload))
	}
	*t.bin = append(*t.bin, item)
	return item
}

// Take removes the item with the given id from the bin and returns it.
func (t *Trash) Take(trashID string) (domain.TrashItem, bool) {
	for i, it := range *t.bin {
		if it.ID == trashID {
			*t.bin = append((*t.bin)[:i:i], (*t.bin)[i+1:]...)
			return it, true
		}
	}
	return domain.TrashItem{}, false
}

// Empty discards every item and returns how many were dropped.
func (t *Trash) Empty() int {
	n := len(*t.bin)
	*t.bin = []domain.TrashItem{}
	return n
}

// Len returns the number of items in the bin.
func (t *Trash) Len() int {
	return len(*t.bin)
}

func activityLabel(a domain.Activity) string {
	if a.Title == "" {
		return "Untitled activity"
	}
	return a.Title
}

func stayLabel(a domain.Accommodation) string {
	if a.HotelName == "" {
		return "Unnamed stay"
	}
	return a.HotelName
}

func fromDay(label string, dayNumber int) string {
	return fmt.Sprintf("%s (from Day %d)", label, dayNumber)
}
