package kernel

import (
	"errors"
	"fmt"
	"math"

	"aidmatch/internal/pkg/errs"
	"aidmatch/internal/pkg/guard"
)

const (
	// MinLatitude is the minimum valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the maximum valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the minimum valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the maximum valid longitude in degrees.
	MaxLongitude = 180.0

	// MinMatchDistanceKm is the lower bound of the matching band. Distances
	// below it indicate coincident or duplicate coordinates and are treated
	// as data errors rather than real nearby requests.
	MinMatchDistanceKm = 0.1
	// MaxMatchDistanceKm is the upper bound of the matching band. Requests
	// farther away are outside the volunteer's service area.
	MaxMatchDistanceKm = 10.0

	// averageTravelSpeedKmh is the constant speed assumed by the travel time
	// estimate. It is a display-only figure, not a routing computation.
	averageTravelSpeedKmh = 30.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geocoded coordinate pair in decimal degrees.
// It is an immutable value object; the zero value is invalid and fails
// validation, so instances must be created via NewGeoPoint.
//
// Example:
//
//	origin, err := kernel.NewGeoPoint(10.00, 76.00)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(origin) // Output: GeoPoint(10.000000,76.000000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in
// decimal degrees. NaN values and coordinates outside [-90,90] / [-180,180]
// are rejected.
//
// Parameters:
//   - lat: latitude in degrees, MinLatitude..MaxLatitude inclusive
//   - lon: longitude in degrees, MinLongitude..MaxLongitude inclusive
//
// Returns:
//   - GeoPoint: a valid coordinate pair
//   - error: validation error if either coordinate is NaN or out of bounds
func NewGeoPoint(lat float64, lon float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lon)". Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceKm calculates the great-circle distance to another point using the
// haversine formula, rounded to two decimal places.
//
// Both points must be properly constructed; coordinate range validation is
// the constructor's job, so the computation itself is total.
//
// Example:
//
//	origin, _ := kernel.NewGeoPoint(10.00, 76.00)
//	target, _ := kernel.NewGeoPoint(10.018, 76.00)
//	km, _ := origin.DistanceKm(target) // ≈ 2.00
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLon := (other.lon - p.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*100) / 100, nil
}

// WithinMatchBand reports whether a distance falls inside the inclusive
// matching band [minKm, maxKm]. Pass MinMatchDistanceKm and
// MaxMatchDistanceKm for the standard band.
func WithinMatchBand(distanceKm, minKm, maxKm float64) bool {
	return distanceKm >= minKm && distanceKm <= maxKm
}

// EstimatedTravelTime renders a constant-speed travel time estimate for the
// given distance, assuming 30 km/h. Results under an hour are formatted as
// "<n> minutes", longer ones as "<h>h <m>m".
//
// This is a display-only estimate and is never used for filtering.
//
// Example:
//
//	kernel.EstimatedTravelTime(2.0)  // "4 minutes"
//	kernel.EstimatedTravelTime(45.0) // "1h 30m"
func EstimatedTravelTime(distanceKm float64) string {
	minutes := int(math.Round(distanceKm / averageTravelSpeedKmh * 60))
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// setLat sets the latitude with validation.
// Pointer receiver by intent: private setters mutate during construction only.
func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

// setLon sets the longitude with validation.
// Pointer receiver by intent: private setters mutate during construction only.
func (p *GeoPoint) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lon", lon, MinLongitude, MaxLongitude)
	}

	p.lon = lon
	return nil
}
