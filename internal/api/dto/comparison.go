package dto

import "time"

type LocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type CompareRequest struct {
	Origins      []LocationRequest `json:"origins"`
	Destinations []LocationRequest `json:"destinations"`
}

type DetailResponse struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

type SummaryResponse struct {
	Destination      string  `json:"destination"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalDurationMin float64 `json:"total_duration_min"`
}

type DestinationErrorResponse struct {
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// ComparisonResponse lists summaries in ranked order. Best is omitted when
// no destination could be summarized.
type ComparisonResponse struct {
	ID        int64                      `json:"id"`
	CreatedAt time.Time                  `json:"created_at"`
	Details   []DetailResponse           `json:"details"`
	Summaries []SummaryResponse          `json:"summaries"`
	Errors    []DestinationErrorResponse `json:"errors"`
	Best      string                     `json:"best,omitempty"`
}

type ComparisonListItem struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Best      string    `json:"best,omitempty"`
}

type ListComparisonsResponse struct {
	Comparisons []ComparisonListItem `json:"comparisons"`
}
