package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "carebook/database/repository/booking"
	providerRepo "carebook/database/repository/provider"
	"carebook/models"
)

// fakeProviderRepo is an in-memory ProviderRepository.
type fakeProviderRepo struct {
	providers []models.Provider
}

func (f *fakeProviderRepo) Create(_ context.Context, p *models.Provider) error {
	f.providers = append(f.providers, *p)
	return nil
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	for i := range f.providers {
		if f.providers[i].ID == id {
			p := f.providers[i]
			return &p, nil
		}
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (f *fakeProviderRepo) GetByEmail(_ context.Context, email string) (*models.Provider, error) {
	for i := range f.providers {
		if f.providers[i].Profile.Email == email {
			p := f.providers[i]
			return &p, nil
		}
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (f *fakeProviderRepo) GetByServiceLevel(_ context.Context, level string) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Profile.Status == "active" && p.OfferingFor(level) != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) Search(_ context.Context, criteria providerRepo.SearchCriteria) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Profile.Status != "active" || len(p.Availability) == 0 {
			continue
		}
		if criteria.ServiceLevel != "" && p.OfferingFor(criteria.ServiceLevel) == nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProviderRepo) AppendAvailability(_ context.Context, providerID string, entries []models.AvailabilityEntry) error {
	for i := range f.providers {
		if f.providers[i].ID == providerID {
			f.providers[i].Availability = append(f.providers[i].Availability, entries...)
			return nil
		}
	}
	return providerRepo.ErrProviderNotFound
}

func (f *fakeProviderRepo) Update(_ context.Context, p *models.Provider) error {
	for i := range f.providers {
		if f.providers[i].ID == p.ID {
			f.providers[i] = *p
			return nil
		}
	}
	return providerRepo.ErrProviderNotFound
}

// fakeBookingRepo is an in-memory BookingRepository with the same
// conditional-update semantics as the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) CreateTransactional(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) findWhere(match func(*models.Booking) bool) []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if match(b) {
			out = append(out, *b)
		}
	}
	return out
}

func (f *fakeBookingRepo) FindActiveByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	return f.findWhere(func(b *models.Booking) bool {
		return b.ProviderID == providerID && b.IsActive()
	}), nil
}

func (f *fakeBookingRepo) FindByProviderAndStatus(_ context.Context, providerID, status string) ([]models.Booking, error) {
	return f.findWhere(func(b *models.Booking) bool {
		return b.ProviderID == providerID && b.Status == status
	}), nil
}

func (f *fakeBookingRepo) FindByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	return f.findWhere(func(b *models.Booking) bool { return b.ProviderID == providerID }), nil
}

func (f *fakeBookingRepo) FindBySeeker(_ context.Context, seekerID string) ([]models.Booking, error) {
	return f.findWhere(func(b *models.Booking) bool { return b.SeekerID == seekerID }), nil
}

func (f *fakeBookingRepo) MarkConfirmed(_ context.Context, id string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != models.BookingStatusPending {
		return false, nil
	}
	b.Status = models.BookingStatusConfirmed
	b.ConfirmedAt = &at
	return true, nil
}

func (f *fakeBookingRepo) MarkRejected(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != models.BookingStatusPending {
		return false, nil
	}
	b.Status = models.BookingStatusRejected
	return true, nil
}

func (f *fakeBookingRepo) MarkCancelled(_ context.Context, id string, at time.Time, note string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || (b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed) {
		return false, nil
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &at
	b.Notes = note
	return true, nil
}

func (f *fakeBookingRepo) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var swept int64
	for _, b := range f.bookings {
		if b.Status == models.BookingStatusPending && b.ConfirmationDeadline.Before(now) {
			b.Status = models.BookingStatusCancelled
			at := now
			b.CancelledAt = &at
			swept++
		}
	}
	return swept, nil
}
