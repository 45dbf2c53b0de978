package georisk

import "fmt"

// HazardZone is a named circular region of influence on the sphere's
// surface. Risk decays linearly from 1 at the center to 0 at the edge and
// is zero beyond it. Immutable once constructed.
type HazardZone struct {
	Name     string
	Center   Coordinate
	RadiusKm float64
}

// NewHazardZone validates the radius and returns the zone. A non-positive
// radius fails with a HazardZoneError wrapping ErrInvalidHazardZone. The
// name is a display label; it is expected to be non-empty but not enforced.
func NewHazardZone(name string, center Coordinate, radiusKm float64) (HazardZone, error) {
	if radiusKm <= 0 {
		return HazardZone{}, &HazardZoneError{Name: name, RadiusKm: radiusKm}
	}
	return HazardZone{Name: name, Center: center, RadiusKm: radiusKm}, nil
}

// String renders the zone for display in summaries.
func (z HazardZone) String() string {
	return fmt.Sprintf("%s: Center %s, Radius %.2f km", z.Name, z.Center, z.RadiusKm)
}
