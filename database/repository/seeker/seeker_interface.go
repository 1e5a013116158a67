package seekerRepo

import (
	"context"

	"carebook/models"
)

// SeekerRepository defines methods for seeker data access.
type SeekerRepository interface {
	Create(ctx context.Context, seeker *models.Seeker) error
	GetByID(ctx context.Context, id string) (*models.Seeker, error)
	GetByEmail(ctx context.Context, email string) (*models.Seeker, error)
	Update(ctx context.Context, seeker *models.Seeker) error
}
