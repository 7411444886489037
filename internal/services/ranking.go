package services

import (
	"cmp"
	"distance-compare-service/internal/domain"
	"errors"
	"slices"
)

var ErrNoDestinations = errors.New("no destinations to rank")

// Rank returns a copy of summaries sorted by total distance ascending.
// The sort is stable, so ties keep their input order. Duration is not considered.
func Rank(summaries []domain.SummaryRow) []domain.SummaryRow {
	out := make([]domain.SummaryRow, len(summaries))
	copy(out, summaries)

	slices.SortStableFunc(out, func(a, b domain.SummaryRow) int {
		return cmp.Compare(a.TotalDistanceKm, b.TotalDistanceKm)
	})
	return out
}

// Best returns the destination of the first ranked summary.
func Best(ranked []domain.SummaryRow) (string, error) {
	if len(ranked) == 0 {
		return "", ErrNoDestinations
	}
	return ranked[0].Destination, nil
}
