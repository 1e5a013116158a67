package models

import "time"

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// HasCoordinates reports whether the point carries a usable lon/lat pair.
func (g GeoPoint) HasCoordinates() bool {
	return len(g.Coordinates) >= 2
}

// Lon returns the longitude component.
func (g GeoPoint) Lon() float64 { return g.Coordinates[0] }

// Lat returns the latitude component.
func (g GeoPoint) Lat() float64 { return g.Coordinates[1] }

// NewGeoPoint builds a GeoJSON point from a lat/lon pair.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// ServiceOffering is one care level a provider offers with its hourly rate.
type ServiceOffering struct {
	Level        string  `bson:"level" json:"level"` // e.g. "Level 1"
	PricePerHour float64 `bson:"price_per_hour" json:"price_per_hour"`
}

type ProviderProfile struct {
	Name        string   `bson:"name" json:"name"`
	Email       string   `bson:"email" json:"email"`
	PhoneNumber string   `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Status      string   `bson:"status" json:"status,omitempty"` // "active" once onboarded
	Address     string   `bson:"address" json:"address,omitempty"`
	Bio         string   `bson:"bio" json:"bio,omitempty"`
	LocationGeo GeoPoint `bson:"locationGeo" json:"locationGeo"`
}

type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
}

// Provider is a caregiver who publishes availability and receives bookings.
type Provider struct {
	ID                        string              `bson:"id" json:"id"`
	Profile                   ProviderProfile     `bson:"profile" json:"profile"`
	Security                  Security            `bson:"security" json:"security,omitzero"`
	ServiceLevels             []ServiceOffering   `bson:"serviceLevels" json:"serviceLevels"`
	Availability              []AvailabilityEntry `bson:"availability" json:"availability,omitempty"`
	AdvanceNoticeHours        int                 `bson:"advanceNoticeHours" json:"advanceNoticeHours,omitempty"`
	ConfirmationDeadlineHours int                 `bson:"bookingConfirmationDeadlineHours" json:"booking_confirmation_deadline_hours,omitempty"`
	CreatedAt                 time.Time           `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt                 time.Time           `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// OfferingFor returns the provider's offering for the given service level,
// or nil when the level is not offered.
func (p *Provider) OfferingFor(level string) *ServiceOffering {
	for i := range p.ServiceLevels {
		if p.ServiceLevels[i].Level == level {
			return &p.ServiceLevels[i]
		}
	}
	return nil
}
