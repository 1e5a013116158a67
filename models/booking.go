package models

import "time"

// Booking statuses. A booking is never deleted, only transitioned.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusRejected  = "Rejected"
	BookingStatusCancelled = "Cancelled"
)

// Booking is a reserved engagement between a seeker and a provider.
// Recurring holds the concrete per-weekday slots the reservation workflow
// materialised from the request, bounded by [StartDate, EndDate].
type Booking struct {
	ID                   string         `bson:"id" json:"id"`
	SeekerID             string         `bson:"service_seeker_id" json:"service_seeker_id"`
	ProviderID           string         `bson:"service_provider_id" json:"service_provider_id"`
	ServiceLevel         string         `bson:"service_level" json:"service_level"`
	Price                float64        `bson:"price" json:"price"`
	StartDate            string         `bson:"start_date" json:"start_date"`
	EndDate              string         `bson:"end_date" json:"end_date"`
	Recurring            []RecurringDay `bson:"recurring" json:"recurring"`
	Status               string         `bson:"status" json:"status"`
	RequestCreatedAt     time.Time      `bson:"request_created_at" json:"request_created_at"`
	ConfirmationDeadline time.Time      `bson:"confirmation_deadline" json:"confirmation_deadline"`
	ConfirmedAt          *time.Time     `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	CancelledAt          *time.Time     `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	Notes                string         `bson:"notes,omitempty" json:"notes,omitempty"`
	Location             GeoPoint       `bson:"location" json:"location,omitzero"`
}

// IsActive reports whether the booking still occupies the provider's
// schedule for conflict purposes.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
