package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// latLngPattern accepts "<lat>,<lng>" with an optional sign and decimal fraction.
// Range is not checked.
var latLngPattern = regexp.MustCompile(`^-?\d+(\.\d+)?,-?\d+(\.\d+)?$`)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ParseGeoPoint parses a "lat,lng" corner as sent by the map front-end.
// A coordinate too large for float64 parses to ±Inf.
func ParseGeoPoint(s string) (GeoPoint, error) {
	if !latLngPattern.MatchString(s) {
		return GeoPoint{}, fmt.Errorf("%w: %q is not lat,lng", ErrInvalidArgument, s)
	}
	latStr, lngStr, _ := strings.Cut(s, ",")
	lat, err := parseCoordinate(latStr)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("%w: latitude: %v", ErrInvalidArgument, err)
	}
	lng, err := parseCoordinate(lngStr)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("%w: longitude: %v", ErrInvalidArgument, err)
	}
	return GeoPoint{Lat: lat, Lon: lng}, nil
}

func parseCoordinate(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// Bounds represents a geographic bounding box given by its southwest (min)
// and northeast (max) corners. MinLon may exceed MaxLon when the box
// crosses the antimeridian.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// NewBounds builds a box from the southwest and northeast corners.
func NewBounds(sw, ne GeoPoint) Bounds {
	return Bounds{MinLat: sw.Lat, MinLon: sw.Lon, MaxLat: ne.Lat, MaxLon: ne.Lon}
}

// CrossesAntimeridian reports whether the box wraps around ±180° longitude.
func (b Bounds) CrossesAntimeridian() bool {
	return b.MinLon > b.MaxLon
}

// Contains reports whether the point lies inside the box. It is the same
// filter the place stores apply in SQL.
func (b Bounds) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.CrossesAntimeridian() {
		return lon >= b.MinLon || lon <= b.MaxLon
	}
	return b.MinLon <= lon && lon <= b.MaxLon
}
