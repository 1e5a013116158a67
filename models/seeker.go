package models

import "time"

// Seeker is a client who requests care bookings.
type Seeker struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Address     string    `bson:"address" json:"address,omitempty"`
	Security    Security  `bson:"security" json:"security,omitzero"`
	LocationGeo GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}
