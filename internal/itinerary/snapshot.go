package itinerary

// Snapshot records where one activity sat when a speculative move began, so
// that move can be undone without touching anything else on the board.
type Snapshot struct {
	activityID string
	dayID      string
	index      int
}

// Empty reports whether the snapshot was never taken.
func (s Snapshot) Empty() bool {
	return s.activityID == ""
}

// Snapshot captures the current position of the activity. An unknown id
// yields an empty snapshot.
func (e *Engine) Snapshot(activityID string) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, d := range e.trip.Days {
		if i := d.FindActivity(activityID); i >= 0 {
			return Snapshot{activityID: activityID, dayID: d.ID, index: i}
		}
	}
	return Snapshot{}
}

// Restore moves the snapshotted activity back to its recorded day and index.
// Only that activity is relocated; every other change made since the snapshot
// stays. Nothing happens when the snapshot is empty, the activity is no longer
// on the board, or its origin day is gone. It reports whether the board changed.
func (e *Engine) Restore(s Snapshot) bool {
	if s.Empty() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	oi := e.trip.FindDay(s.dayID)
	if oi < 0 {
		return false
	}
	ci, ai := -1, -1
	for i := range e.trip.Days {
		if j := e.trip.Days[i].FindActivity(s.activityID); j >= 0 {
			ci, ai = i, j
			break
		}
	}
	if ci < 0 {
		return false
	}

	if ci == oi {
		if !e.reorderWithin(oi, ai, s.index) {
			return false
		}
	} else {
		moved := e.trip.Days[ci].Activities[ai]
		e.trip.Days[ci].Activities = removeAt(e.trip.Days[ci].Activities, ai)
		e.trip.Days[oi].Activities = insertAt(e.trip.Days[oi].Activities, s.index, moved)
		e.recalculate(ci)
		e.recalculate(oi)
	}
	e.touch()

	e.log.Debug("itinerary: activity returned", "activity_id", s.activityID, "day_id", s.dayID, "index", s.index)
	return true
}
