package georisk

import (
	"errors"
	"fmt"
)

// Validation errors. Construction and analysis failures wrap one of these
// sentinels so callers can branch with errors.Is.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidHazardZone = errors.New("invalid hazard zone")
	ErrInvalidRoute      = errors.New("invalid route")
)

// CoordinateError reports a latitude or longitude outside its valid range.
type CoordinateError struct {
	// Axis is "latitude" or "longitude".
	Axis string

	// Value is the rejected input in degrees.
	Value float64

	// Min and Max are the inclusive bounds for the axis.
	Min float64
	Max float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g degrees, got %g", e.Axis, e.Min, e.Max, e.Value)
}

func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// HazardZoneError reports a hazard zone constructed with a non-positive radius.
type HazardZoneError struct {
	Name     string
	RadiusKm float64
}

func (e *HazardZoneError) Error() string {
	return fmt.Sprintf("hazard zone %q radius must be positive, got %g km", e.Name, e.RadiusKm)
}

func (e *HazardZoneError) Unwrap() error { return ErrInvalidHazardZone }

// RouteError reports a route handed to analysis with too few waypoints.
type RouteError struct {
	Name      string
	Waypoints int
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("route %q must have at least 2 waypoints, got %d", e.Name, e.Waypoints)
}

func (e *RouteError) Unwrap() error { return ErrInvalidRoute }
