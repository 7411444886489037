package ncp

import (
	"context"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"encoding/json"
	"fmt"
)

type geocodeResponse struct {
	Status string `json:"status"`
	Meta   struct {
		TotalCount int `json:"totalCount"`
	} `json:"meta"`
	Addresses []struct {
		X string `json:"x"`
		Y string `json:"y"`
	} `json:"addresses"`
	ErrorMessage string `json:"errorMessage"`
}

// Geocode resolves address to the coordinate of its first match.
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "ncp.Geocode")(&err)

	req, err := c.newRequest(ctx, c.geocodeURL, map[string]string{"query": address})
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w: %w", address, ports.ErrGeocodeNotFound, err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w: %w", address, ports.ErrGeocodeNotFound, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: decode response: %w: %w", address, ports.ErrGeocodeNotFound, err)
	}

	if decoded.Meta.TotalCount == 0 || len(decoded.Addresses) == 0 {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: no matches: %w", address, ports.ErrGeocodeNotFound)
	}

	first := decoded.Addresses[0]
	if first.X == "" || first.Y == "" {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: first match has no coordinate: %w", address, ports.ErrGeocodeNotFound)
	}

	return domain.Coordinate{X: first.X, Y: first.Y}, nil
}
