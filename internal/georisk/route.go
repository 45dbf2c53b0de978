package georisk

import (
	"fmt"
	"strings"
)

// Route is an ordered sequence of waypoints in travel order. It is an
// append-only builder during input collection; the analyzer treats it as
// read-only. Duplicate and repeated waypoints are permitted.
type Route struct {
	name      string
	waypoints []Coordinate
}

// NewRoute creates an empty route with the given display name.
func NewRoute(name string) *Route {
	return &Route{name: name}
}

// AddWaypoint appends a waypoint to the end of the route.
func (r *Route) AddWaypoint(c Coordinate) {
	r.waypoints = append(r.waypoints, c)
}

// AddWaypointLatLon constructs a coordinate from lat and lon and appends
// it. Fails with the coordinate's construction error when out of range,
// leaving the route unchanged.
func (r *Route) AddWaypointLatLon(lat, lon float64) error {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		return err
	}
	r.waypoints = append(r.waypoints, c)
	return nil
}

// Name returns the route's display name.
func (r *Route) Name() string { return r.name }

// IsValid reports whether the route has enough waypoints for analysis.
// At least 2 are required.
func (r *Route) IsValid() bool { return len(r.waypoints) >= 2 }

// WaypointCount returns the number of waypoints.
func (r *Route) WaypointCount() int { return len(r.waypoints) }

// Waypoints returns a copy of the waypoints in travel order.
func (r *Route) Waypoints() []Coordinate {
	out := make([]Coordinate, len(r.waypoints))
	copy(out, r.waypoints)
	return out
}

// String renders the route name and numbered waypoint list.
func (r *Route) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Route: %s (%d waypoints)\n", r.name, len(r.waypoints))
	for i, wp := range r.waypoints {
		fmt.Fprintf(&sb, "  Point %d: %s\n", i+1, wp)
	}
	return sb.String()
}
