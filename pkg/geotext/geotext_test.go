package geotext

import (
	"errors"
	"testing"
)

func TestParseWaypoints(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Waypoint
	}{
		{
			name: "two lines",
			text: "34.0522,-118.2437\n33.8121,-117.9190",
			expected: []Waypoint{
				{Lat: 34.0522, Lon: -118.2437},
				{Lat: 33.8121, Lon: -117.9190},
			},
		},
		{
			name: "blank lines and padding skipped",
			text: "\n  34.05 , -118.05  \n\n34.10,-118.10\n",
			expected: []Waypoint{
				{Lat: 34.05, Lon: -118.05},
				{Lat: 34.10, Lon: -118.10},
			},
		},
		{
			name:     "empty input",
			text:     "\n  \n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWaypoints(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d waypoints, got %d", len(tt.expected), len(got))
			}
			for i, wp := range got {
				if wp != tt.expected[i] {
					t.Errorf("waypoint %d: expected %+v, got %+v", i, tt.expected[i], wp)
				}
			}
		})
	}
}

func TestParseWaypoints_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{name: "missing longitude", text: "34.05", wantLine: 1},
		{name: "too many fields", text: "34.05,-118.05,12", wantLine: 1},
		{name: "bad number on later line", text: "34.05,-118.05\nnorth,-118.10", wantLine: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWaypoints(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T", err)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, parseErr.Line)
			}
		})
	}
}

func TestParseZones(t *testing.T) {
	text := "San Andreas Fault Zone,34.00,-118.00,80,8.5\n" +
		"Quiet Zone,33.50,-117.30,60\n"

	zones, err := ParseZones(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}

	first := zones[0]
	if first.Name != "San Andreas Fault Zone" || first.Lat != 34.00 || first.Lon != -118.00 || first.RadiusKm != 80 {
		t.Errorf("unexpected first zone: %+v", first)
	}
	if !first.HasWeight || first.Weight != 8.5 {
		t.Errorf("expected weight 8.5, got %+v", first)
	}

	second := zones[1]
	if second.HasWeight {
		t.Errorf("expected no weight on four-field line: %+v", second)
	}
	if second.RadiusKm != 60 {
		t.Errorf("expected radius 60, got %g", second.RadiusKm)
	}
}

func TestParseZones_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "too few fields", text: "Zone,34.00,-118.00"},
		{name: "too many fields", text: "Zone,34.00,-118.00,80,8.5,extra"},
		{name: "bad radius", text: "Zone,34.00,-118.00,wide"},
		{name: "bad weight", text: "Zone,34.00,-118.00,80,heavy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseZones(tt.text); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	waypoints := []Waypoint{
		{Lat: 34.0522, Lon: -118.2437},
		{Lat: 32.7157, Lon: -117.1611},
	}
	parsed, err := ParseWaypoints(FormatWaypoints(waypoints))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 2 || parsed[0] != waypoints[0] || parsed[1] != waypoints[1] {
		t.Errorf("round trip mismatch: %+v", parsed)
	}

	zones := []Zone{
		{Name: "San Andreas Fault Zone", Lat: 34, Lon: -118, RadiusKm: 80, Weight: 8.5, HasWeight: true},
		{Name: "Rose Canyon Fault", Lat: 32.85, Lon: -117.20, RadiusKm: 35},
	}
	parsedZones, err := ParseZones(FormatZones(zones))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsedZones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(parsedZones))
	}
	if parsedZones[0] != zones[0] || parsedZones[1] != zones[1] {
		t.Errorf("round trip mismatch: %+v", parsedZones)
	}
}
