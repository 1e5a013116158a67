package booking

import (
	"fmt"

	"carebook/models"
)

// NotFoundError covers both a missing booking and a booking the acting
// user does not own; callers must not be able to distinguish the two.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// StateTransitionError signals an accept/reject/cancel attempted from a
// state other than the required source state. It means the caller acted on
// a stale view of the booking.
type StateTransitionError struct {
	BookingID string
	From      string
	Attempted string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking %s in status %s", e.Attempted, e.BookingID, e.From)
}

// ScheduleConflictError carries the full conflict list detected during an
// accept-time re-check. Conflicts during reservation are returned as data,
// not as this error; this type exists for transitions, where the caller
// asked for a single booking and needs a hard answer.
type ScheduleConflictError struct {
	BookingID string
	Conflicts []models.Conflict
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("booking %s conflicts with %d confirmed booking slot(s)", e.BookingID, len(e.Conflicts))
}
