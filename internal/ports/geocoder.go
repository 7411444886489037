package ports

import (
	"context"
	"distance-compare-service/internal/domain"
	"errors"
)

// ErrGeocodeNotFound reports an address that could not be resolved,
// either because the provider failed or because it returned no match.
var ErrGeocodeNotFound = errors.New("geocode not found")

// Contract for turning a free-text address into a coordinate.
type Geocoder interface {
	// Return the first match for address. Failures wrap ErrGeocodeNotFound.
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}
