package bookingRepo

import (
	"context"
	"time"

	"carebook/models"
)

// BookingRepository defines methods for booking data access. Status
// transitions are compare-and-swap operations: each Mark* method matches
// only bookings in the permitted source state and reports whether the swap
// landed, so concurrent writers cannot double-apply a transition.
type BookingRepository interface {
	// CreateTransactional inserts the booking inside a session transaction
	// so a failed insert never leaves partial state behind.
	CreateTransactional(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// FindActiveByProvider returns the provider's Pending and Confirmed
	// bookings, the set conflict checks run against.
	FindActiveByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	// FindByProviderAndStatus returns the provider's bookings in one status.
	FindByProviderAndStatus(ctx context.Context, providerID, status string) ([]models.Booking, error)
	FindByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	FindBySeeker(ctx context.Context, seekerID string) ([]models.Booking, error)

	// MarkConfirmed moves Pending → Confirmed and stamps confirmed_at.
	MarkConfirmed(ctx context.Context, id string, at time.Time) (bool, error)
	// MarkRejected moves Pending → Rejected.
	MarkRejected(ctx context.Context, id string) (bool, error)
	// MarkCancelled moves Pending or Confirmed → Cancelled, stamps
	// cancelled_at and appends the audit note.
	MarkCancelled(ctx context.Context, id string, at time.Time, note string) (bool, error)

	// ExpireStale cancels Pending bookings whose confirmation deadline has
	// passed and returns how many were swept.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
