// Package zones provides the persisted hazard zone registry.
package zones

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrZoneNotFound = errors.New("zone not found")
)

// Zone represents a persisted hazard zone.
type Zone struct {
	ID          string
	Name        string
	Center      Point
	RadiusKm    float64
	Weight      *float64
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Point represents a geographic point.
type Point struct {
	Lat float64
	Lon float64
}
