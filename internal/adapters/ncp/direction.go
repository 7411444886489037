package ncp

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"encoding/json"
	"fmt"
)

type routeSummary struct {
	Distance *float64 `json:"distance"` // meters
	Duration *float64 `json:"duration"` // milliseconds
}

type directionResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Route   map[string][]struct {
		Summary *routeSummary `json:"summary"`
	} `json:"route"`
}

// Evaluate fetches the driving route between start and goal and returns its
// distance in kilometers and duration in minutes, both rounded to one decimal.
func (c *Client) Evaluate(ctx context.Context, start, goal domain.Coordinate) (_ domain.RouteMetric, err error) {
	defer obs.Time(ctx, "ncp.Evaluate")(&err)

	req, err := c.newRequest(ctx, c.directionURL, map[string]string{
		"start":  start.String(),
		"goal":   goal.String(),
		"option": c.option,
	})
	if err != nil {
		return domain.RouteMetric{}, fmt.Errorf("evaluate route %s -> %s: %w: %w", start, goal, ports.ErrRouteNotFound, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.RouteMetric{}, fmt.Errorf("evaluate route %s -> %s: %w: %w", start, goal, ports.ErrRouteNotFound, err)
	}
	defer resp.Body.Close()

	var decoded directionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteMetric{}, fmt.Errorf("evaluate route %s -> %s: decode response: %w: %w", start, goal, ports.ErrRouteNotFound, err)
	}

	routes := decoded.Route[c.option]
	if len(routes) == 0 || routes[0].Summary == nil {
		return domain.RouteMetric{}, fmt.Errorf(
			"evaluate route %s -> %s: no %s summary (code=%d message=%q): %w",
			start, goal, c.option, decoded.Code, decoded.Message, ports.ErrRouteNotFound,
		)
	}

	summary := routes[0].Summary
	if summary.Distance == nil || summary.Duration == nil {
		return domain.RouteMetric{}, fmt.Errorf("evaluate route %s -> %s: summary missing distance or duration: %w", start, goal, ports.ErrRouteNotFound)
	}

	return MetricFromSummary(*summary.Distance, *summary.Duration), nil
}

// MetricFromSummary converts a meters/milliseconds summary into a RouteMetric.
func MetricFromSummary(meters, millis float64) domain.RouteMetric {
	return domain.RouteMetric{
		DistanceKm:  domain.Round1(meters / 1000),
		DurationMin: domain.Round1(millis / 60000),
	}
}
