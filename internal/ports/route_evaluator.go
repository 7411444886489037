package ports

import (
	"context"
	"distance-compare-service/internal/domain"
	"errors"
)

// ErrRouteNotFound reports a routing failure or a response without a usable route summary.
var ErrRouteNotFound = errors.New("route not found")

// Contract for retrieving travel distance and duration between two coordinates.
type RouteEvaluator interface {
	// Return distance (km) and duration (min) rounded to one decimal.
	// Failures wrap ErrRouteNotFound.
	Evaluate(ctx context.Context, start, goal domain.Coordinate) (domain.RouteMetric, error)
}
