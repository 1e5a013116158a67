package booking

import (
	"context"
	"fmt"
	"time"

	providerRepo "carebook/database/repository/provider"
	"carebook/models"
	"carebook/services/schedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService manages a provider's published availability.
type AvailabilityService interface {
	// Publish validates and appends availability entries. Entries already
	// fully covered by the provider's existing availability come back as
	// duplicates, malformed ones as conflicts; the rest are added.
	Publish(ctx context.Context, providerID string, entries []models.AvailabilityEntry) (*models.AvailabilityUpdateResult, error)
	// Get returns the provider's availability entries.
	Get(ctx context.Context, providerID string) ([]models.AvailabilityEntry, error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	ProviderRepo providerRepo.ProviderRepository
	Logger       *zap.Logger
}

func (s *DefaultAvailabilityService) Publish(ctx context.Context, providerID string, entries []models.AvailabilityEntry) (*models.AvailabilityUpdateResult, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	result := &models.AvailabilityUpdateResult{
		Added:      []models.AvailabilityEntry{},
		Conflicts:  []models.Conflict{},
		Duplicates: []models.AvailabilityEntry{},
	}
	known := provider.Availability

	for _, entry := range entries {
		problems := schedule.ValidateEntryShape(entry.StartDate, entry.EndDate, entry.Recurring, nil)
		if len(entry.Recurring) == 0 {
			problems = append(problems, models.Conflict{
				Type:    models.ConflictDay,
				Message: "availability entry has no recurring days",
			})
		}
		if len(problems) > 0 {
			result.Conflicts = append(result.Conflicts, problems...)
			continue
		}
		if schedule.EntryCovered(entry, known) {
			result.Duplicates = append(result.Duplicates, entry)
			continue
		}
		entry.ID = uuid.New().String()
		entry.CreatedAt = time.Now().Unix()
		result.Added = append(result.Added, entry)
		// Later entries in the same batch count earlier ones as existing.
		known = append(known, entry)
	}

	if len(result.Added) > 0 {
		if err := s.ProviderRepo.AppendAvailability(ctx, providerID, result.Added); err != nil {
			return nil, fmt.Errorf("failed to persist availability: %w", err)
		}
	}

	result.Success = len(result.Conflicts) == 0
	switch {
	case len(result.Added) == len(entries):
		result.Message = fmt.Sprintf("added %d availability entr%s", len(result.Added), plural(len(result.Added), "y", "ies"))
	case len(result.Added) > 0:
		result.Message = fmt.Sprintf("added %d of %d entries (%d duplicate, %d invalid)",
			len(result.Added), len(entries), len(result.Duplicates), len(result.Conflicts))
	case len(result.Duplicates) > 0 && len(result.Conflicts) == 0:
		result.Message = "all entries already covered by existing availability"
	default:
		result.Message = "no entries added"
	}

	if s.Logger != nil {
		s.Logger.Info("availability published",
			zap.String("providerID", providerID),
			zap.Int("added", len(result.Added)),
			zap.Int("duplicates", len(result.Duplicates)),
			zap.Int("conflicts", len(result.Conflicts)),
		)
	}
	return result, nil
}

func (s *DefaultAvailabilityService) Get(ctx context.Context, providerID string) ([]models.AvailabilityEntry, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return provider.Availability, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
