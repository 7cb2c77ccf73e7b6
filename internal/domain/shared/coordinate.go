package shared

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// Coordinate represents an immutable geographic position
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewCoordinate creates a new coordinate with validation
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, NewValidationError("lat", fmt.Sprintf("out of range: %f", lat))
	}
	if lng < -180 || lng > 180 {
		return Coordinate{}, NewValidationError("lng", fmt.Sprintf("out of range: %f", lng))
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// DistanceTo calculates the great-circle (haversine) distance in meters
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLng := (other.Lng - c.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%f, %f)", c.Lat, c.Lng)
}

// Offset is a coordinate delta applied to raw position readings.
// A zero offset leaves readings untouched.
type Offset struct {
	DLat float64
	DLng float64
}

// OffsetBetween computes the offset that maps from onto target
func OffsetBetween(target, from Coordinate) Offset {
	return Offset{
		DLat: target.Lat - from.Lat,
		DLng: target.Lng - from.Lng,
	}
}

// Apply shifts a coordinate by the offset
func (o Offset) Apply(c Coordinate) Coordinate {
	return Coordinate{Lat: c.Lat + o.DLat, Lng: c.Lng + o.DLng}
}

// IsZero checks if the offset is the identity transform
func (o Offset) IsZero() bool {
	return o.DLat == 0 && o.DLng == 0
}
