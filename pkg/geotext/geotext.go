// Package geotext parses and formats the line-oriented text forms for
// route waypoints and hazard zones.
//
// Route text carries one waypoint per line as "lat,lon". Zone text carries
// one zone per line as "name,lat,lon,radius_km" with an optional trailing
// display weight field. Blank lines are skipped and fields are trimmed.
// Parsing is purely syntactic: range checks on the parsed numbers belong
// to the caller.
package geotext

import (
	"fmt"
	"strconv"
	"strings"
)

// Waypoint is one parsed route line.
type Waypoint struct {
	Lat float64
	Lon float64
}

// Zone is one parsed hazard zone line. Weight is 0 when the line omits the
// optional fifth field; HasWeight distinguishes an omitted weight from an
// explicit zero.
type Zone struct {
	Name      string
	Lat       float64
	Lon       float64
	RadiusKm  float64
	Weight    float64
	HasWeight bool
}

// ParseError reports a malformed input line.
type ParseError struct {
	// Line is the 1-based line number in the input text.
	Line int

	// Text is the offending line after trimming.
	Text string

	// Reason describes what was expected.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
}

// ParseWaypoints parses route text into waypoints, preserving line order.
func ParseWaypoints(text string) ([]Waypoint, error) {
	var waypoints []Waypoint

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "expected format: latitude,longitude"}
		}

		lat, err := parseFloat(parts[0])
		if err != nil {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "latitude is not a decimal number"}
		}
		lon, err := parseFloat(parts[1])
		if err != nil {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "longitude is not a decimal number"}
		}

		waypoints = append(waypoints, Waypoint{Lat: lat, Lon: lon})
	}

	return waypoints, nil
}

// ParseZones parses zone text into zones, preserving line order. Each line
// needs four fields, or five when the optional weight is present.
func ParseZones(text string) ([]Zone, error) {
	var zones []Zone

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != 4 && len(parts) != 5 {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "expected format: name,latitude,longitude,radius_km[,risk_weight]"}
		}

		zone := Zone{Name: strings.TrimSpace(parts[0])}

		var err error
		if zone.Lat, err = parseFloat(parts[1]); err != nil {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "latitude is not a decimal number"}
		}
		if zone.Lon, err = parseFloat(parts[2]); err != nil {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "longitude is not a decimal number"}
		}
		if zone.RadiusKm, err = parseFloat(parts[3]); err != nil {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "radius is not a decimal number"}
		}
		if len(parts) == 5 {
			if zone.Weight, err = parseFloat(parts[4]); err != nil {
				return nil, &ParseError{Line: lineNo + 1, Text: line, Reason: "risk weight is not a decimal number"}
			}
			zone.HasWeight = true
		}

		zones = append(zones, zone)
	}

	return zones, nil
}

// FormatWaypoints renders waypoints as route text, one "lat,lon" per line.
func FormatWaypoints(waypoints []Waypoint) string {
	var sb strings.Builder
	for _, wp := range waypoints {
		fmt.Fprintf(&sb, "%g,%g\n", wp.Lat, wp.Lon)
	}
	return sb.String()
}

// FormatZones renders zones as zone text, one per line, including the
// weight field only when set.
func FormatZones(zones []Zone) string {
	var sb strings.Builder
	for _, z := range zones {
		if z.HasWeight {
			fmt.Fprintf(&sb, "%s,%g,%g,%g,%g\n", z.Name, z.Lat, z.Lon, z.RadiusKm, z.Weight)
		} else {
			fmt.Fprintf(&sb, "%s,%g,%g,%g\n", z.Name, z.Lat, z.Lon, z.RadiusKm)
		}
	}
	return sb.String()
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
