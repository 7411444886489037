package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Immutable geographic coordinate as returned by the geocoder.
// X is the longitude and Y the latitude, both kept verbatim so the
// value can be handed back to the directions API unchanged.
type Coordinate struct {
	X string
	Y string
}

// String encodes the coordinate as "x,y" for external API compatibility.
func (c Coordinate) String() string { return c.X + "," + c.Y }

// LonLat parses the coordinate into floating point longitude and latitude.
func (c Coordinate) LonLat() (lon float64, lat float64, err error) {
	lon, err = strconv.ParseFloat(strings.TrimSpace(c.X), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", c.X, err)
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(c.Y), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", c.Y, err)
	}

	return lon, lat, nil
}
