package ports

import (
	"context"
	"distance-compare-service/internal/domain"
	"errors"
)

var ErrComparisonNotFound = errors.New("comparison not found")

// Port: a boundary for storing and retrieving completed comparison runs.
type ComparisonRepository interface {
	// Persist a comparison and return its assigned id.
	SaveComparison(ctx context.Context, c *domain.Comparison) (int64, error)
	// Load one comparison with all of its rows.
	GetComparison(ctx context.Context, id int64) (*domain.Comparison, error)
	// List the most recent comparisons, newest first. Rows are not loaded.
	ListComparisons(ctx context.Context, limit int) ([]*domain.Comparison, error)
}
