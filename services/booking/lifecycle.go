package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "carebook/database/repository/booking"
	"carebook/models"
	"carebook/services/schedule"

	"go.uber.org/zap"
)

// Accept confirms a Pending booking. Before committing it re-checks the
// provider's other Confirmed bookings for overlap; two requests accepted
// concurrently would otherwise both land. The status flip itself is a
// conditional update, so even if two accepts pass the re-check only one
// swap succeeds.
func (s *DefaultBookingService) Accept(ctx context.Context, bookingID string, actor Actor) (*models.BookingStatusResult, error) {
	b, err := s.loadOwned(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	if actor.Role != "provider" {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusPending {
		return nil, &StateTransitionError{BookingID: bookingID, From: b.Status, Attempted: "accept"}
	}

	confirmed, err := s.BookingRepo.FindByProviderAndStatus(ctx, b.ProviderID, models.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed bookings: %w", err)
	}
	occs := schedule.ExpandBooking(*b)
	duplicates, conflicts := schedule.BookingConflicts(occs, confirmed, "")
	conflicts = append(duplicates, conflicts...)
	if len(conflicts) > 0 {
		return nil, &ScheduleConflictError{BookingID: bookingID, Conflicts: conflicts}
	}

	swapped, err := s.BookingRepo.MarkConfirmed(ctx, bookingID, s.clock())
	if err != nil {
		return nil, err
	}
	if !swapped {
		// Lost the race: someone transitioned it between our read and the swap.
		fresh, ferr := s.BookingRepo.GetByID(ctx, bookingID)
		from := "unknown"
		if ferr == nil {
			from = fresh.Status
		}
		return nil, &StateTransitionError{BookingID: bookingID, From: from, Attempted: "accept"}
	}

	if s.Logger != nil {
		s.Logger.Info("booking confirmed", zap.String("bookingID", bookingID), zap.String("providerID", actor.ID))
	}
	return &models.BookingStatusResult{
		Success:   true,
		Message:   "booking confirmed",
		BookingID: bookingID,
		NewStatus: models.BookingStatusConfirmed,
	}, nil
}

// Reject declines a Pending booking.
func (s *DefaultBookingService) Reject(ctx context.Context, bookingID string, actor Actor) (*models.BookingStatusResult, error) {
	b, err := s.loadOwned(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	if actor.Role != "provider" {
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	if b.Status != models.BookingStatusPending {
		return nil, &StateTransitionError{BookingID: bookingID, From: b.Status, Attempted: "reject"}
	}

	swapped, err := s.BookingRepo.MarkRejected(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !swapped {
		fresh, ferr := s.BookingRepo.GetByID(ctx, bookingID)
		from := "unknown"
		if ferr == nil {
			from = fresh.Status
		}
		return nil, &StateTransitionError{BookingID: bookingID, From: from, Attempted: "reject"}
	}

	if s.Logger != nil {
		s.Logger.Info("booking rejected", zap.String("bookingID", bookingID), zap.String("providerID", actor.ID))
	}
	return &models.BookingStatusResult{
		Success:   true,
		Message:   "booking rejected",
		BookingID: bookingID,
		NewStatus: models.BookingStatusRejected,
	}, nil
}

// Cancel withdraws a Pending or Confirmed booking. Either party may cancel
// their own booking; the audit note records who did.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string, actor Actor) (*models.BookingStatusResult, error) {
	b, err := s.loadOwned(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed {
		return nil, &StateTransitionError{BookingID: bookingID, From: b.Status, Attempted: "cancel"}
	}

	note := fmt.Sprintf("Cancelled by %s %s", actor.Role, actor.ID)
	swapped, err := s.BookingRepo.MarkCancelled(ctx, bookingID, s.clock(), note)
	if err != nil {
		return nil, err
	}
	if !swapped {
		fresh, ferr := s.BookingRepo.GetByID(ctx, bookingID)
		from := "unknown"
		if ferr == nil {
			from = fresh.Status
		}
		return nil, &StateTransitionError{BookingID: bookingID, From: from, Attempted: "cancel"}
	}

	if s.Logger != nil {
		s.Logger.Info("booking cancelled",
			zap.String("bookingID", bookingID),
			zap.String("actorRole", actor.Role),
			zap.String("actorID", actor.ID),
		)
	}
	return &models.BookingStatusResult{
		Success:   true,
		Message:   "booking cancelled",
		BookingID: bookingID,
		NewStatus: models.BookingStatusCancelled,
	}, nil
}

// loadOwned fetches a booking and verifies the actor is a party to it.
// A booking the actor does not own reads as not found.
func (s *DefaultBookingService) loadOwned(ctx context.Context, bookingID string, actor Actor) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
		return nil, err
	}
	switch actor.Role {
	case "provider":
		if b.ProviderID != actor.ID {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
	case "seeker":
		if b.SeekerID != actor.ID {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
	default:
		return nil, &NotFoundError{Resource: "booking", ID: bookingID}
	}
	return b, nil
}
