package providerRepo

import (
	"context"

	"carebook/models"
)

// SearchCriteria narrows a candidate-provider search.
type SearchCriteria struct {
	ServiceLevel  string
	MaxDistanceKm float64
	LocationGeo   models.GeoPoint
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByEmail retrieves a provider by its email address.
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	// GetByServiceLevel returns active providers offering the given level.
	GetByServiceLevel(ctx context.Context, level string) ([]models.Provider, error)
	// Search returns candidates for the criteria, nearest first when a
	// search center is given.
	Search(ctx context.Context, criteria SearchCriteria) ([]models.Provider, error)
	// AppendAvailability pushes new availability entries onto a provider.
	AppendAvailability(ctx context.Context, providerID string, entries []models.AvailabilityEntry) error
	// Update replaces mutable profile fields of an existing provider.
	Update(ctx context.Context, provider *models.Provider) error
}
