package estimate

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/ports"
	"fmt"

	"github.com/umahmood/haversine"
)

// DefaultSpeedKmh is the average driving speed assumed for duration estimates.
const DefaultSpeedKmh = 40.0

// HaversineEvaluator estimates routes from great-circle distance and a fixed
// average speed. It makes no network calls and is meant for running the
// comparison without directions API quota.
type HaversineEvaluator struct {
	SpeedKmh float64
}

func NewHaversineEvaluator(speedKmh float64) *HaversineEvaluator {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return &HaversineEvaluator{SpeedKmh: speedKmh}
}

func (e *HaversineEvaluator) Evaluate(ctx context.Context, start, goal domain.Coordinate) (domain.RouteMetric, error) {
	if err := ctx.Err(); err != nil {
		return domain.RouteMetric{}, err
	}

	startLon, startLat, err := start.LonLat()
	if err != nil {
		return domain.RouteMetric{}, fmt.Errorf("estimate route: start: %w: %w", ports.ErrRouteNotFound, err)
	}
	goalLon, goalLat, err := goal.LonLat()
	if err != nil {
		return domain.RouteMetric{}, fmt.Errorf("estimate route: goal: %w: %w", ports.ErrRouteNotFound, err)
	}

	_, km := haversine.Distance(
		haversine.Coord{Lat: startLat, Lon: startLon},
		haversine.Coord{Lat: goalLat, Lon: goalLon},
	)

	return domain.RouteMetric{
		DistanceKm:  domain.Round1(km),
		DurationMin: domain.Round1(km / e.SpeedKmh * 60),
	}, nil
}
