// Package addressrepo provides read access to geocoded addresses. Addresses
// are written once when an account or request is created and only their
// coordinates are consumed by the matching flow, so there is no domain
// aggregate behind this table.
package addressrepo

import (
	"time"

	"github.com/google/uuid"
)

// AddressDTO represents the database structure for geocoded addresses.
// Latitude and Longitude are nullable: an address whose geocoding failed is
// stored without coordinates and treated as unresolvable by GetCoordinates.
type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Line      string
	City      string
	Postcode  string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// TableName specifies the database table name for address entities.
func (AddressDTO) TableName() string {
	return "addresses"
}
