package services

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"errors"
	"fmt"
	"time"
)

const (
	MaxOrigins      = 4
	MaxDestinations = 10
)

var ErrInvalidInput = errors.New("invalid comparison input")

type CompareRequest struct {
	Origins      []domain.NamedLocation
	Destinations []domain.NamedLocation
}

// CompareDestinations runs the pairwise aggregation, ranks the destinations,
// and stores the outcome when a repository is given.
//
// Input entries follow form semantics: blank rows are ignored and a repeated
// name overwrites the earlier address. A failed save is logged and the
// comparison is still returned with ID 0.
func CompareDestinations(
	ctx context.Context,
	req CompareRequest,
	aggregator *Aggregator,
	repo ports.ComparisonRepository,
) (*domain.Comparison, error) {
	if len(req.Origins) > MaxOrigins {
		return nil, fmt.Errorf("compare destinations: %d origins given, at most %d allowed: %w", len(req.Origins), MaxOrigins, ErrInvalidInput)
	}
	if len(req.Destinations) > MaxDestinations {
		return nil, fmt.Errorf("compare destinations: %d destinations given, at most %d allowed: %w", len(req.Destinations), MaxDestinations, ErrInvalidInput)
	}

	origins := domain.NewLocations(req.Origins)
	destinations := domain.NewLocations(req.Destinations)

	res, err := aggregator.Run(ctx, origins, destinations)
	if err != nil {
		return nil, fmt.Errorf("compare destinations: %w", err)
	}

	ranked := Rank(res.Summaries)
	best, err := Best(ranked)
	if err != nil && !errors.Is(err, ErrNoDestinations) {
		return nil, fmt.Errorf("compare destinations: %w", err)
	}

	c := &domain.Comparison{
		CreatedAt: time.Now().UTC(),
		Details:   res.Details,
		Summaries: ranked,
		Errors:    res.Errors,
		Best:      best,
	}

	if repo != nil {
		id, err := repo.SaveComparison(ctx, c)
		if err != nil {
			obs.Logger(ctx).Error("comparison save failed", "err", err)
		} else {
			c.ID = id
		}
	}

	return c, nil
}
