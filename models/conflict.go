package models

// Conflict classification. Conflicts are ordinary data, never errors: the
// caller is expected to present the full list and retry with different
// parameters.
const (
	ConflictDay       = "day_conflict"
	ConflictTime      = "time_conflict"
	ConflictDateRange = "date_range_conflict"
	ConflictDuplicate = "duplicate"
	ConflictLocation  = "location_conflict"
)

// Conflict describes one detected overlap, duplicate, or exclusion.
type Conflict struct {
	Type          string `json:"type"`
	Message       string `json:"message"`
	Day           string `json:"day,omitempty"`            // weekday name, when relevant
	Date          string `json:"date,omitempty"`           // "YYYY-MM-DD", when relevant
	RequestedTime string `json:"requested_time,omitempty"` // "HH:MM-HH:MM"
	ExistingTime  string `json:"existing_time,omitempty"`
	ProviderID    string `json:"provider_id,omitempty"`
}
