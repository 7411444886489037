package domain

import (
	"math"
	"strconv"
	"time"
)

// Travel distance and duration along a single route.
type RouteMetric struct {
	DistanceKm  float64
	DurationMin float64
}

// One successfully evaluated origin -> destination pair.
type DetailRow struct {
	Origin      string
	Destination string
	DistanceKm  float64
	DurationMin float64
}

// Aggregate totals for one destination over every origin that produced a DetailRow.
type SummaryRow struct {
	Destination      string
	TotalDistanceKm  float64
	TotalDurationMin float64
}

// A user-visible failure for a destination that was excluded from the results.
type DestinationError struct {
	Destination string
	Message     string
}

// Represents one completed comparison run.
// Summaries are stored in ranked order; Best is empty when there are no summaries.
type Comparison struct {
	ID        int64
	CreatedAt time.Time
	Details   []DetailRow
	Summaries []SummaryRow
	Errors    []DestinationError
	Best      string
}

// Round1 rounds v to one decimal place from its exact binary value, ties to
// even. 0.25 becomes 0.2 and 0.15 (stored just below) becomes 0.1.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
