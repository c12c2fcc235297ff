// Package geocoding resolves free-form addresses into coordinates through an
// external provider.
package geocoding

import "context"

// Location is the resolved coordinate pair for an address.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a street address into a location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}
