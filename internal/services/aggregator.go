package services

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"fmt"
)

// Result holds the raw output of one pairwise run, before ranking.
type Result struct {
	Details   []domain.DetailRow
	Summaries []domain.SummaryRow
	Errors    []domain.DestinationError
}

// Aggregator evaluates every (destination, origin) pair strictly in input
// order, one external call at a time.
type Aggregator struct {
	resolver  *Resolver
	evaluator ports.RouteEvaluator
}

func NewAggregator(resolver *Resolver, evaluator ports.RouteEvaluator) *Aggregator {
	return &Aggregator{resolver: resolver, evaluator: evaluator}
}

// Run computes detail rows and per-destination totals.
//
// A destination whose address cannot be geocoded is reported in Result.Errors
// and produces no rows. An origin that cannot be geocoded, or a pair without a
// route, is skipped silently. Every resolved destination gets a SummaryRow,
// even when no origin succeeded. The only error returned is the context's.
func (a *Aggregator) Run(
	ctx context.Context,
	origins []domain.NamedLocation,
	destinations []domain.NamedLocation,
) (_ Result, err error) {
	defer obs.Time(ctx, "aggregator.Run")(&err)

	l := obs.Logger(ctx)

	res := Result{
		Details:   []domain.DetailRow{},
		Summaries: make([]domain.SummaryRow, 0, len(destinations)),
		Errors:    []domain.DestinationError{},
	}

	for _, dest := range destinations {
		goal, err := a.resolver.Resolve(ctx, dest.Address)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, fmt.Errorf("aggregate: resolve destination %q: %w", dest.Name, ctxErr)
			}
			l.Info("destination skipped", "destination", dest.Name, "err", err)
			res.Errors = append(res.Errors, domain.DestinationError{
				Destination: dest.Name,
				Message:     fmt.Sprintf("%s: address could not be geocoded", dest.Name),
			})
			continue
		}

		var totalDistance, totalDuration float64

		for _, origin := range origins {
			start, err := a.resolver.Resolve(ctx, origin.Address)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return Result{}, fmt.Errorf("aggregate: resolve origin %q: %w", origin.Name, ctxErr)
				}
				l.Debug("origin skipped", "origin", origin.Name, "destination", dest.Name, "err", err)
				continue
			}

			metric, err := a.evaluator.Evaluate(ctx, start, goal)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return Result{}, fmt.Errorf("aggregate: evaluate %q -> %q: %w", origin.Name, dest.Name, ctxErr)
				}
				l.Debug("pair skipped", "origin", origin.Name, "destination", dest.Name, "err", err)
				continue
			}

			res.Details = append(res.Details, domain.DetailRow{
				Origin:      origin.Name,
				Destination: dest.Name,
				DistanceKm:  metric.DistanceKm,
				DurationMin: metric.DurationMin,
			})
			totalDistance += metric.DistanceKm
			totalDuration += metric.DurationMin
		}

		res.Summaries = append(res.Summaries, domain.SummaryRow{
			Destination:      dest.Name,
			TotalDistanceKm:  domain.Round1(totalDistance),
			TotalDurationMin: domain.Round1(totalDuration),
		})
	}

	return res, nil
}
