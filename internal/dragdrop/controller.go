package dragdrop

import (
	"errors"
	"log/slog"

	"github.com/pkordes/tripboard/internal/domain"
	"github.com/pkordes/tripboard/internal/itinerary"
)

// ErrSessionActive is returned by Start while another drag is in progress.
var ErrSessionActive = errors.New("drag session already active")

// ErrNoItem is returned by Start when called with a nil item.
var ErrNoItem = errors.New("drag item is required")

// State is the drag session lifecycle state.
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Outcome reports what End or Cancel did.
type Outcome string

const (
	// OutcomeCommitted means the board changed during the session.
	OutcomeCommitted Outcome = "committed"
	// OutcomeCancelled means speculative changes were rolled back.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeIgnored means nothing changed (no session, or nothing to do).
	OutcomeIgnored Outcome = "ignored"
)

// Engine is the subset of *itinerary.Engine the controller drives.
type Engine interface {
	AddActivity(dayID string, a domain.Activity, index int) bool
	SetAccommodation(dayID string, acc *domain.Accommodation) bool
	ReorderActivity(dayID string, oldIndex, newIndex int) bool
	MoveActivityBetweenDays(sourceDayID, targetDayID, activityID string, index int) bool
	ReorderDays(oldIndex, newIndex int) bool
	LocateActivity(activityID string) (dayID string, index int, ok bool)
	DayIndex(dayID string) int
	Trip() domain.Trip
	Snapshot(activityID string) itinerary.Snapshot
	Restore(itinerary.Snapshot) bool
}

var _ Engine = (*itinerary.Engine)(nil)

// Controller is the drag session state machine for one board.
// It is not safe for concurrent use; callers serialise access.
type Controller struct {
	engine  Engine
	log     *slog.Logger
	observe func(from, to State)

	state    State
	item     Item
	preview  any
	snapshot itinerary.Snapshot
	moved    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger transitions are reported to at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithObserver registers fn to be called on every state transition.
func WithObserver(fn func(from, to State)) Option {
	return func(c *Controller) { c.observe = fn }
}

// NewController returns an idle controller driving engine.
func NewController(engine Engine, opts ...Option) *Controller {
	c := &Controller{engine: engine}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Active returns the dragged item, if a session is in progress.
func (c *Controller) Active() (Item, bool) {
	if c.state != Dragging {
		return nil, false
	}
	return c.item, true
}

// Preview returns a copy of the dragged payload for rendering: the
// suggestion, the domain.Activity, or the domain.Day being dragged.
func (c *Controller) Preview() any { return c.preview }

// Start begins a session. Dragging an existing activity records its position
// so Cancel can undo hover moves.
func (c *Controller) Start(item Item) error {
	if item == nil {
		return ErrNoItem
	}
	if c.state != Idle {
		return ErrSessionActive
	}

	c.item = item
	c.moved = false
	c.snapshot = itinerary.Snapshot{}
	c.preview = c.capturePreview(item)
	if ea, ok := item.(ExistingActivity); ok {
		c.snapshot = c.engine.Snapshot(ea.ActivityID)
	}
	c.transition(Dragging)
	return nil
}

// Over handles the pointer crossing into target. Only an existing activity
// hovering over a different day's activity list, or over an activity in that
// day, is moved, immediately. It reports whether the board changed.
func (c *Controller) Over(target *Target) bool {
	if c.state != Dragging || target == nil {
		return false
	}
	if target.Kind != TargetActivityList && target.Kind != TargetActivity {
		return false
	}
	item, ok := c.item.(ExistingActivity)
	if !ok {
		return false
	}
	current, _, found := c.engine.LocateActivity(item.ActivityID)
	if !found || target.DayID == "" || target.DayID == current {
		return false
	}

	if !c.engine.MoveActivityBetweenDays(current, target.DayID, item.ActivityID, c.indexIn(target)) {
		return false
	}
	c.moved = true
	c.log.Debug("dragdrop: hover move", "activity_id", item.ActivityID, "from_day", current, "to_day", target.DayID)
	return true
}

// End handles the drop. A nil target cancels the session.
func (c *Controller) End(target *Target) Outcome {
	if c.state != Dragging {
		return OutcomeIgnored
	}
	if target == nil {
		c.cancel()
		return OutcomeCancelled
	}

	c.transition(Committing)
	applied := c.commit(*target) || c.moved
	c.reset()

	if applied {
		return OutcomeCommitted
	}
	return OutcomeIgnored
}

// Cancel abandons the session and returns a hover-moved activity to where it
// started. Other changes made during the session are kept.
func (c *Controller) Cancel() Outcome {
	if c.state != Dragging {
		return OutcomeIgnored
	}
	c.cancel()
	return OutcomeCancelled
}

func (c *Controller) cancel() {
	c.transition(Cancelled)
	if c.moved {
		c.engine.Restore(c.snapshot)
	}
	c.reset()
}

func (c *Controller) commit(target Target) bool {
	switch item := c.item.(type) {
	case SuggestedActivity:
		switch target.Kind {
		case TargetActivityList, TargetDayCard, TargetActivity:
			return c.engine.AddActivity(target.DayID, newActivity(item.Suggestion), c.indexIn(&target))
		}
		return false

	case SuggestedAccommodation:
		switch target.Kind {
		case TargetHotelZone, TargetDayCard:
			acc := item.Suggestion.ToAccommodation("")
			return c.engine.SetAccommodation(target.DayID, &acc)
		}
		return false

	case ExistingActivity:
		return c.dropActivity(item, target)

	case WholeDay:
		from := c.engine.DayIndex(item.DayID)
		to := c.engine.DayIndex(target.DayID)
		if from < 0 || to < 0 || from == to {
			return false
		}
		return c.engine.ReorderDays(from, to)
	}
	return false
}

// dropActivity settles an existing activity at the drop position. Cross-day
// moves have usually happened already during hover.
func (c *Controller) dropActivity(item ExistingActivity, target Target) bool {
	current, index, found := c.engine.LocateActivity(item.ActivityID)
	if !found {
		return false
	}

	if target.Kind == TargetActivity && target.ActivityID != item.ActivityID {
		overDay, overIndex, ok := c.engine.LocateActivity(target.ActivityID)
		if !ok {
			return false
		}
		if overDay == current {
			return c.engine.ReorderActivity(current, index, overIndex)
		}
		return c.engine.MoveActivityBetweenDays(current, overDay, item.ActivityID, overIndex)
	}

	if target.DayID != "" && target.DayID != current {
		return c.engine.MoveActivityBetweenDays(current, target.DayID, item.ActivityID, itinerary.End)
	}
	return false
}

// indexIn returns the insertion index implied by target: the hovered
// activity's position when it lives in the target day, else End.
func (c *Controller) indexIn(target *Target) int {
	if target.Kind != TargetActivity || target.ActivityID == "" {
		return itinerary.End
	}
	day, idx, ok := c.engine.LocateActivity(target.ActivityID)
	if !ok || day != target.DayID {
		return itinerary.End
	}
	return idx
}

func (c *Controller) capturePreview(item Item) any {
	switch it := item.(type) {
	case SuggestedActivity:
		return it.Suggestion
	case SuggestedAccommodation:
		return it.Suggestion
	case ExistingActivity:
		trip := c.engine.Trip()
		for _, d := range trip.Days {
			if i := d.FindActivity(it.ActivityID); i >= 0 {
				return d.Activities[i]
			}
		}
	case WholeDay:
		trip := c.engine.Trip()
		if i := trip.FindDay(it.DayID); i >= 0 {
			return trip.Days[i]
		}
	}
	return nil
}

func (c *Controller) reset() {
	c.item = nil
	c.preview = nil
	c.snapshot = itinerary.Snapshot{}
	c.moved = false
	c.transition(Idle)
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	c.log.Debug("dragdrop: transition", "from", from.String(), "to", to.String())
	if c.observe != nil {
		c.observe(from, to)
	}
}
