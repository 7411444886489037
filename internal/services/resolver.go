package services

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/ports"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

type resolution struct {
	coord domain.Coordinate
	err   error
}

// Resolver turns addresses into coordinates through a Geocoder and memoizes
// every settled answer, including misses, for its own lifetime. There is no
// eviction. Identical addresses requested concurrently share one lookup.
type Resolver struct {
	geocoder ports.Geocoder

	mu    sync.Mutex
	memo  map[string]resolution
	group singleflight.Group
}

func NewResolver(geocoder ports.Geocoder) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		memo:     make(map[string]resolution),
	}
}

// Resolve returns the coordinate for address. Failures wrap ports.ErrGeocodeNotFound
// unless the caller's context ended, in which case nothing is memoized.
//
// The lookup shared by concurrent callers runs detached from any single caller's
// cancellation; a caller whose context ends stops waiting and gets ctx.Err().
func (r *Resolver) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	if res, ok := r.lookup(address); ok {
		return res.coord, res.err
	}
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}

	lookupCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(address, func() (any, error) {
		if res, ok := r.lookup(address); ok {
			return res.coord, res.err
		}

		coord, err := r.geocoder.Geocode(lookupCtx, address)
		if err != nil && isCanceled(err) {
			return domain.Coordinate{}, err
		}

		r.mu.Lock()
		r.memo[address] = resolution{coord: coord, err: err}
		r.mu.Unlock()

		return coord, err
	})

	select {
	case <-ctx.Done():
		return domain.Coordinate{}, ctx.Err()
	case res := <-ch:
		coord, _ := res.Val.(domain.Coordinate)
		return coord, res.Err
	}
}

// Len reports how many distinct addresses are memoized.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.memo)
}

func (r *Resolver) lookup(address string) (resolution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.memo[address]
	return res, ok
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
