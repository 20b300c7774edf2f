package domain

import "time"

// TrashKind discriminates the payload of a TrashItem.
type TrashKind string

const (
	TrashActivity      TrashKind = "activity"
	TrashAccommodation TrashKind = "accommodation"
)

// TrashItem is a soft-deleted activity or accommodation.
// Exactly one of Activity and Accommodation is set, matching Type.
type TrashItem struct {
	ID            string         `json:"id"`
	OriginalDayID string         `json:"originalDayId"`
	Description   string         `json:"description"`
	Type          TrashKind      `json:"type"`
	Activity      *Activity      `json:"activity,omitempty"`
	Accommodation *Accommodation `json:"accommodation,omitempty"`
	DeletedAt     time.Time      `json:"deletedAt"`
}

// Clone returns a deep copy of the trash item.
func (it TrashItem) Clone() TrashItem {
	out := it
	if it.Activity != nil {
		a := it.Activity.Clone()
		out.Activity = &a
	}
	if it.Accommodation != nil {
		a := it.Accommodation.Clone()
		out.Accommodation = &a
	}
	return out
}
