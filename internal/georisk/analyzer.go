// Package georisk scores travel routes against circular hazard zones using
// great-circle proximity analysis. The analyzer is pure: it holds no state
// between calls, never mutates its inputs, and is safe for concurrent use
// as long as callers do not mutate a route mid-analysis.
package georisk

import (
	"fmt"
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius of the sphere model used for all
// great-circle math.
const EarthRadiusKm = 6371.0

// noHazardZonesNote is the single risk factor reported when no zone
// influences any segment.
const noHazardZonesNote = "Route does not pass through any hazard zones"

// RiskLevel classifies a normalized risk score into a band.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// AnalyzerConfig holds configuration for route risk analysis.
type AnalyzerConfig struct {
	// LowRiskThreshold is the highest score still classified LOW.
	// Default: 30.
	LowRiskThreshold float64

	// HighRiskThreshold is the highest score still classified MEDIUM.
	// Scores above it are HIGH. Default: 60.
	HighRiskThreshold float64

	// GeodesicMidpoint samples segments at the true great-circle midpoint
	// instead of the default degree-space average. The default keeps the
	// documented flat averaging, which tracks the geodesic closely for
	// short segments but diverges near the antimeridian.
	GeodesicMidpoint bool
}

// DefaultAnalyzerConfig returns the default configuration.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		LowRiskThreshold:  30,
		HighRiskThreshold: 60,
	}
}

// Result holds the outcome of one route analysis. It is created once per
// AnalyzeRoute call and read-only afterwards.
type Result struct {
	// TotalDistanceKm is the summed great-circle length of all segments.
	TotalDistanceKm float64

	// RiskScore is the normalized score in [0, 100].
	RiskScore float64

	// RiskLevel is the band the score falls into.
	RiskLevel RiskLevel

	// AffectedSegments counts segments influenced by at least one zone.
	AffectedSegments int

	// ZonesAffecting counts distinct zones influencing at least one segment.
	ZonesAffecting int

	// RiskFactors lists one human-readable note per affected segment in
	// traversal order, or a single placeholder note when nothing is affected.
	RiskFactors []string
}

// Analyzer computes route risk scores.
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates an Analyzer, filling zero config fields with defaults.
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	if config.LowRiskThreshold <= 0 {
		config.LowRiskThreshold = DefaultAnalyzerConfig().LowRiskThreshold
	}
	if config.HighRiskThreshold <= 0 {
		config.HighRiskThreshold = DefaultAnalyzerConfig().HighRiskThreshold
	}
	return &Analyzer{config: config}
}

// Distance returns the great-circle distance in kilometers between a and b
// using the Haversine formula on a fixed mean-radius sphere. It is
// symmetric, non-negative, and zero for equal points up to floating-point
// rounding.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Midpoint returns the arithmetic mean of the endpoint coordinates in
// degree space. This is a deliberate approximation of the geodesic
// midpoint, acceptable for segments short relative to the Earth's radius.
// It must stay a plain average for result reproducibility; use
// SphericalMidpoint for the geodesically correct point.
func Midpoint(a, b Coordinate) Coordinate {
	return Coordinate{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}

// SphericalMidpoint returns the true great-circle midpoint between a and b.
func SphericalMidpoint(a, b Coordinate) Coordinate {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	bx := math.Cos(lat2) * math.Cos(deltaLon)
	by := math.Cos(lat2) * math.Sin(deltaLon)

	lat := math.Atan2(
		math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by),
	)
	lon := lon1 + math.Atan2(by, math.Cos(lat1)+bx)

	lonDeg := lon * 180 / math.Pi
	// Wrap into [-180, 180)
	lonDeg = math.Mod(lonDeg+540, 360) - 180

	return Coordinate{Lat: lat * 180 / math.Pi, Lon: lonDeg}
}

// Proximity returns how deeply point p sits inside zone, decaying linearly
// from 1 at the exact center to 0 at the edge. Points at or beyond the
// edge return 0.
func Proximity(p Coordinate, zone HazardZone) float64 {
	d := Distance(p, zone.Center)
	if d > zone.RadiusKm {
		return 0
	}
	return 1 - d/zone.RadiusKm
}

// Classify maps a normalized score to its risk band. Scores on a boundary
// fall into the lower band: the low threshold itself is LOW and the high
// threshold itself is MEDIUM.
func (a *Analyzer) Classify(score float64) RiskLevel {
	switch {
	case score <= a.config.LowRiskThreshold:
		return RiskLevelLow
	case score <= a.config.HighRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// AnalyzeRoute scores a route against the given hazard zones. Each segment
// is sampled at its midpoint: every zone whose influence reaches the
// midpoint contributes segmentLength * proximity to the accumulated risk,
// and the score is the accumulated risk normalized by total route
// distance, scaled to 0-100 and clamped at 100.
//
// It fails with a RouteError wrapping ErrInvalidRoute before any
// computation when the route has fewer than 2 waypoints. An empty zone
// list is permitted and yields a zero score.
func (a *Analyzer) AnalyzeRoute(route *Route, zones []HazardZone) (*Result, error) {
	if route == nil {
		return nil, &RouteError{Name: "", Waypoints: 0}
	}
	if !route.IsValid() {
		return nil, &RouteError{Name: route.name, Waypoints: len(route.waypoints)}
	}

	var (
		totalDistance    float64
		totalRisk        float64
		affectedSegments int
		riskFactors      []string
	)
	affected := make(map[int]struct{})

	for i := 0; i < len(route.waypoints)-1; i++ {
		start := route.waypoints[i]
		end := route.waypoints[i+1]

		segmentLength := Distance(start, end)
		totalDistance += segmentLength

		mid := a.midpoint(start, end)

		var segmentRisk float64
		var notes []string
		for zi, zone := range zones {
			p := Proximity(mid, zone)
			if p <= 0 {
				continue
			}
			segmentRisk += segmentLength * p
			affected[zi] = struct{}{}
			notes = append(notes, fmt.Sprintf("%s (proximity: %.2f)", zone.Name, p))
		}

		if len(notes) > 0 {
			affectedSegments++
			riskFactors = append(riskFactors, fmt.Sprintf(
				"Segment %d→%d (%.2f km): Affected by %s",
				i+1, i+2, segmentLength, strings.Join(notes, ", ")))
		}
		totalRisk += segmentRisk
	}

	var score float64
	if totalDistance > 0 {
		score = totalRisk / totalDistance * 100
	}
	if score > 100 {
		score = 100
	}

	if len(riskFactors) == 0 {
		riskFactors = []string{noHazardZonesNote}
	}

	return &Result{
		TotalDistanceKm:  totalDistance,
		RiskScore:        score,
		RiskLevel:        a.Classify(score),
		AffectedSegments: affectedSegments,
		ZonesAffecting:   len(affected),
		RiskFactors:      riskFactors,
	}, nil
}

// midpoint picks the configured segment sampling point.
func (a *Analyzer) midpoint(p, q Coordinate) Coordinate {
	if a.config.GeodesicMidpoint {
		return SphericalMidpoint(p, q)
	}
	return Midpoint(p, q)
}
