package ports

import (
	"context"

	"aidmatch/internal/core/domain/model/kernel"
)

// AddressProvider resolves a stored entity address (a volunteer's home or a
// request's location) to its geocoded coordinate.
//
// Coordinates are populated once, at address-creation time, by an external
// geocoding call; this engine only reads them and never geocodes.
type AddressProvider interface {
	// GetCoordinates returns the geocoded coordinate for the given address id.
	// Returns an error matching errs.ErrObjectNotFound when the address does
	// not exist or was never geocoded — the caller decides whether that is a
	// hard failure (the volunteer origin) or a skippable record (a candidate).
	GetCoordinates(ctx context.Context, addressID kernel.UUID) (kernel.GeoPoint, error)
}
