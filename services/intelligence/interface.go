package ai

import (
	"context"

	"carebook/models"
)

// CommandParser turns a free-text scheduling command into structured
// booking request entries. The model behind it is a black box; the only
// contract the engine relies on is the entry shape plus the structural
// validation in ValidateEntries.
type CommandParser interface {
	ParseScheduleCommand(ctx context.Context, text string, location models.GeoPoint) ([]models.BookingRequestEntry, error)
}
