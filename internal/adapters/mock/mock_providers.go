package mock

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/ports"
	"fmt"
	"sync"
)

// Geocoder resolves addresses from a fixed table and counts lookups.
// Addresses missing from the table fail with ports.ErrGeocodeNotFound.
type Geocoder struct {
	mu     sync.Mutex
	coords map[string]domain.Coordinate
	calls  map[string]int
	order  []string
}

func NewGeocoder(coords map[string]domain.Coordinate) *Geocoder {
	return &Geocoder{coords: coords, calls: make(map[string]int)}
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[address]++
	g.order = append(g.order, address)

	c, ok := g.coords[address]
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("mock geocode %q: %w", address, ports.ErrGeocodeNotFound)
	}
	return c, nil
}

// Calls reports how many lookups reached the geocoder for address.
func (g *Geocoder) Calls(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[address]
}

// Order returns every address looked up, in call order.
func (g *Geocoder) Order() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.order...)
}

type Pair struct {
	From, To    domain.Coordinate
	DistanceKm  float64
	DurationMin float64
}

// RouteEvaluator answers from a fixed table of coordinate pairs.
// Pairs missing from the table fail with ports.ErrRouteNotFound.
type RouteEvaluator struct {
	m map[string]domain.RouteMetric
}

func NewRouteEvaluator(pairs []Pair) *RouteEvaluator {
	m := make(map[string]domain.RouteMetric, len(pairs))
	for _, p := range pairs {
		m[p.From.String()+"|"+p.To.String()] = domain.RouteMetric{DistanceKm: p.DistanceKm, DurationMin: p.DurationMin}
	}
	return &RouteEvaluator{m: m}
}

func (e *RouteEvaluator) Evaluate(ctx context.Context, start, goal domain.Coordinate) (domain.RouteMetric, error) {
	if err := ctx.Err(); err != nil {
		return domain.RouteMetric{}, err
	}

	r, ok := e.m[start.String()+"|"+goal.String()]
	if !ok {
		return domain.RouteMetric{}, fmt.Errorf("missing pair %s -> %s: %w", start, goal, ports.ErrRouteNotFound)
	}

	return r, nil
}
