package booking

import (
	"context"
	"fmt"
	"time"

	"carebook/models"
	"carebook/services/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reserve implements the batch reservation workflow. Entries are processed
// independently: a failed entry records its reason and processing moves on.
// For each entry the candidates are tried nearest first and at most one
// booking is ever created.
func (s *DefaultBookingService) Reserve(ctx context.Context, seeker *models.Seeker, entries []models.BookingRequestEntry) (*models.ReservationResponse, error) {
	results := models.ReservationResults{
		Successful: []models.BookingOutcome{},
		Failed:     []models.FailedEntry{},
	}

	for _, entry := range entries {
		outcome, failure := s.reserveEntry(ctx, seeker, entry)
		if failure != nil {
			results.Failed = append(results.Failed, *failure)
			continue
		}
		results.Successful = append(results.Successful, *outcome)
		results.TotalBookingsCreated++
	}

	resp := &models.ReservationResponse{
		Success: len(results.Successful) > 0,
		Results: results,
	}
	switch {
	case len(results.Failed) == 0 && len(results.Successful) > 0:
		resp.Summary = fmt.Sprintf("all %d booking(s) created", results.TotalBookingsCreated)
	case len(results.Successful) > 0:
		resp.Summary = fmt.Sprintf("partial success: %d booking(s) created, %d entr%s failed",
			results.TotalBookingsCreated, len(results.Failed), plural(len(results.Failed), "y", "ies"))
	default:
		resp.Summary = "no bookings could be created"
	}

	if s.Logger != nil {
		s.Logger.Info("reservation batch processed",
			zap.String("seekerID", seeker.ID),
			zap.Int("entries", len(entries)),
			zap.Int("created", results.TotalBookingsCreated),
			zap.Int("failed", len(results.Failed)),
		)
	}
	return resp, nil
}

// reserveEntry tries one entry against candidates in ascending distance
// order and stops at the first provider it can book.
func (s *DefaultBookingService) reserveEntry(ctx context.Context, seeker *models.Seeker, entry models.BookingRequestEntry) (*models.BookingOutcome, *models.FailedEntry) {
	if problems := schedule.ValidateEntryShape(entry.StartDate, entry.EndDate, entry.Recurring, entry.TimeSlots); len(problems) > 0 {
		return nil, &models.FailedEntry{Entry: entry, Reason: "invalid entry", Conflicts: problems}
	}
	occs, err := schedule.ExpandEntry(entry)
	if err != nil {
		return nil, &models.FailedEntry{Entry: entry, Reason: err.Error()}
	}
	if len(occs) == 0 {
		return nil, &models.FailedEntry{Entry: entry, Reason: "no matching days in the requested date range"}
	}

	candidates, details, err := s.MatchingSvc.Candidates(ctx, entry.ServiceLevel, seeker.LocationGeo, s.radiusKm())
	if err != nil {
		return nil, &models.FailedEntry{Entry: entry, Reason: fmt.Sprintf("provider lookup failed: %v", err)}
	}
	if len(candidates) == 0 {
		return nil, &models.FailedEntry{
			Entry:     entry,
			Reason:    fmt.Sprintf("no providers offering %s within %.0f km", entry.ServiceLevel, s.radiusKm()),
			Conflicts: details,
		}
	}

	var gathered []models.Conflict
	gathered = append(gathered, details...)

	for _, cand := range candidates {
		provider := cand.Provider

		if c := s.advanceNoticeConflict(&provider, occs); c != nil {
			gathered = append(gathered, *c)
			continue
		}

		gaps := schedule.CoverageConflicts(occs, provider.Availability)
		if len(gaps) > 0 {
			for i := range gaps {
				gaps[i].ProviderID = provider.ID
			}
			gathered = append(gathered, gaps...)
			continue
		}

		existing, err := s.BookingRepo.FindActiveByProvider(ctx, provider.ID)
		if err != nil {
			return nil, &models.FailedEntry{Entry: entry, Reason: fmt.Sprintf("booking lookup failed: %v", err)}
		}
		duplicates, conflicts := schedule.BookingConflicts(occs, existing, seeker.ID)
		if len(duplicates) > 0 {
			// Duplicates win over conflicts and stop the whole entry:
			// the seeker already holds this reservation.
			return nil, &models.FailedEntry{Entry: entry, Reason: "duplicate request", Conflicts: duplicates}
		}
		if len(conflicts) > 0 {
			for i := range conflicts {
				conflicts[i].ProviderID = provider.ID
			}
			gathered = append(gathered, conflicts...)
			continue
		}

		outcome, err := s.createBooking(ctx, seeker, &provider, entry, occs, cand.DistanceKm)
		if err != nil {
			return nil, &models.FailedEntry{Entry: entry, Reason: fmt.Sprintf("failed to persist booking: %v", err)}
		}
		return outcome, nil
	}

	return nil, &models.FailedEntry{
		Entry:     entry,
		Reason:    "no candidate provider could take the booking",
		Conflicts: gathered,
	}
}

func (s *DefaultBookingService) advanceNoticeConflict(provider *models.Provider, occs []schedule.Occurrence) *models.Conflict {
	if provider.AdvanceNoticeHours <= 0 {
		return nil
	}
	earliest := occurrenceStart(occs[0])
	cutoff := s.clock().Add(time.Duration(provider.AdvanceNoticeHours) * time.Hour)
	if earliest.Before(cutoff) {
		return &models.Conflict{
			Type:       models.ConflictDateRange,
			Message:    fmt.Sprintf("provider %s requires %dh advance notice", provider.Profile.Name, provider.AdvanceNoticeHours),
			Date:       schedule.FormatDate(occs[0].Date),
			ProviderID: provider.ID,
		}
	}
	return nil
}

// occurrenceStart resolves an occurrence's earliest slot to a UTC instant.
// Slots arrive in request order, not sorted, so every one is inspected.
func occurrenceStart(occ schedule.Occurrence) time.Time {
	earliest := -1
	for _, slot := range occ.Slots {
		start, _, err := schedule.SlotMinutes(slot)
		if err != nil {
			continue
		}
		if earliest < 0 || start < earliest {
			earliest = start
		}
	}
	if earliest < 0 {
		return occ.Date
	}
	return occ.Date.Add(time.Duration(earliest) * time.Minute)
}

func (s *DefaultBookingService) createBooking(ctx context.Context, seeker *models.Seeker, provider *models.Provider, entry models.BookingRequestEntry, occs []schedule.Occurrence, distanceKm float64) (*models.BookingOutcome, error) {
	offering := provider.OfferingFor(entry.ServiceLevel)
	if offering == nil {
		return nil, fmt.Errorf("provider %s does not offer %s", provider.ID, entry.ServiceLevel)
	}

	now := s.clock()
	booking := &models.Booking{
		ID:                   uuid.New().String(),
		SeekerID:             seeker.ID,
		ProviderID:           provider.ID,
		ServiceLevel:         entry.ServiceLevel,
		Price:                offering.PricePerHour * totalHours(occs),
		StartDate:            entry.StartDate,
		EndDate:              entry.EndDate,
		Recurring:            schedule.GroupByWeekday(occs),
		Status:               models.BookingStatusPending,
		RequestCreatedAt:     now,
		ConfirmationDeadline: now.Add(time.Duration(s.deadlineHours(provider)) * time.Hour),
		Notes:                entry.Notes,
		Location:             seeker.LocationGeo,
	}

	if err := s.BookingRepo.CreateTransactional(ctx, booking); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("booking created",
			zap.String("bookingID", booking.ID),
			zap.String("providerID", provider.ID),
			zap.String("seekerID", seeker.ID),
			zap.Float64("distanceKm", distanceKm),
		)
	}
	return &models.BookingOutcome{
		BookingID:    booking.ID,
		ProviderID:   provider.ID,
		ProviderName: provider.Profile.Name,
		ServiceLevel: entry.ServiceLevel,
		StartDate:    entry.StartDate,
		EndDate:      entry.EndDate,
		Price:        booking.Price,
		DistanceKm:   distanceKm,
	}, nil
}

// totalHours sums the duration of every expanded slot, for pricing.
func totalHours(occs []schedule.Occurrence) float64 {
	var minutes int
	for _, occ := range occs {
		for _, slot := range occ.Slots {
			start, end, err := schedule.SlotMinutes(slot)
			if err != nil {
				continue
			}
			minutes += end - start
		}
	}
	return float64(minutes) / 60
}
