package booking

import (
	"context"
	"time"

	bookingRepo "carebook/database/repository/booking"
	"carebook/models"

	"go.uber.org/zap"
)

// Actor identifies who is invoking a lifecycle operation. Identity is
// passed explicitly into every call; nothing reads ambient request state.
type Actor struct {
	ID   string
	Role string // "provider" or "seeker"
}

// BookingService is the reservation workflow and booking lifecycle.
type BookingService interface {
	// Reserve processes a batch of independent request entries with
	// best-effort partial fulfillment: for each entry it finds the nearest
	// fully available provider and creates at most one Pending booking.
	Reserve(ctx context.Context, seeker *models.Seeker, entries []models.BookingRequestEntry) (*models.ReservationResponse, error)

	// Accept moves a Pending booking to Confirmed after re-checking the
	// provider's confirmed schedule for overlaps.
	Accept(ctx context.Context, bookingID string, actor Actor) (*models.BookingStatusResult, error)
	// Reject moves a Pending booking to Rejected.
	Reject(ctx context.Context, bookingID string, actor Actor) (*models.BookingStatusResult, error)
	// Cancel moves a Pending or Confirmed booking to Cancelled and records
	// which party cancelled.
	Cancel(ctx context.Context, bookingID string, actor Actor) (*models.BookingStatusResult, error)

	ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	ListForSeeker(ctx context.Context, seekerID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	MatchingSvc MatchingService
	BookingRepo bookingRepo.BookingRepository
	Logger      *zap.Logger

	// MaxRadiusKm bounds candidate search distance; zero means the 30 km default.
	MaxRadiusKm float64
	// DeadlineHours is the confirmation deadline for providers that set none.
	DeadlineHours int

	// now is swappable in tests.
	now func() time.Time
}

const (
	defaultRadiusKm      = 30
	defaultDeadlineHours = 12
)

func (s *DefaultBookingService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *DefaultBookingService) radiusKm() float64 {
	if s.MaxRadiusKm > 0 {
		return s.MaxRadiusKm
	}
	return defaultRadiusKm
}

func (s *DefaultBookingService) deadlineHours(p *models.Provider) int {
	if p.ConfirmationDeadlineHours > 0 {
		return p.ConfirmationDeadlineHours
	}
	if s.DeadlineHours > 0 {
		return s.DeadlineHours
	}
	return defaultDeadlineHours
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.BookingRepo.FindByProvider(ctx, providerID)
}

func (s *DefaultBookingService) ListForSeeker(ctx context.Context, seekerID string) ([]models.Booking, error) {
	return s.BookingRepo.FindBySeeker(ctx, seekerID)
}
