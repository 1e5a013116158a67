package models

// AvailabilityUpdateResult is returned by the availability publishing call.
type AvailabilityUpdateResult struct {
	Success    bool                `json:"success"`
	Added      []AvailabilityEntry `json:"added"`
	Conflicts  []Conflict          `json:"conflicts"`
	Duplicates []AvailabilityEntry `json:"duplicates"`
	Message    string              `json:"message"`
}

// BookingOutcome records one successfully reserved entry.
type BookingOutcome struct {
	BookingID    string  `json:"booking_id"`
	ProviderID   string  `json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	ServiceLevel string  `json:"service_level"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Price        float64 `json:"price"`
	DistanceKm   float64 `json:"distance_km"`
}

// FailedEntry records one entry that could not be reserved, with the full
// conflict detail gathered while trying candidates.
type FailedEntry struct {
	Entry     BookingRequestEntry `json:"entry"`
	Reason    string              `json:"reason"`
	Conflicts []Conflict          `json:"conflicts,omitempty"`
}

// ReservationResults aggregates per-entry outcomes of one booking request
// batch. Sibling entries are independent: one failure never aborts the rest.
type ReservationResults struct {
	Successful           []BookingOutcome `json:"successful"`
	Failed               []FailedEntry    `json:"failed"`
	TotalBookingsCreated int              `json:"totalBookingsCreated"`
}

// ReservationResponse is the booking creation call's envelope.
type ReservationResponse struct {
	Success bool               `json:"success"`
	Results ReservationResults `json:"results"`
	Summary string             `json:"summary"`
}

// BookingStatusResult is returned by accept/reject/cancel.
type BookingStatusResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
	NewStatus string `json:"new_status"`
}
