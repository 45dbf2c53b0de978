package georisk

import "fmt"

// Valid coordinate ranges in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
// Construct with NewCoordinate to enforce range validation; the zero value
// is the valid point (0, 0).
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates lat and lon and returns the coordinate.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// violations fail with a CoordinateError wrapping ErrInvalidCoordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < MinLatitude || lat > MaxLatitude {
		return Coordinate{}, &CoordinateError{Axis: "latitude", Value: lat, Min: MinLatitude, Max: MaxLatitude}
	}
	if lon < MinLongitude || lon > MaxLongitude {
		return Coordinate{}, &CoordinateError{Axis: "longitude", Value: lon, Min: MinLongitude, Max: MaxLongitude}
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// String renders the coordinate with six decimal places, which is
// sub-meter precision. Display only; never used in computation.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}
