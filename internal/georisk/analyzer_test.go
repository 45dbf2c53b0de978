package georisk_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardroute/hazardroute/internal/georisk"
)

func mustCoordinate(t *testing.T, lat, lon float64) georisk.Coordinate {
	t.Helper()
	c, err := georisk.NewCoordinate(lat, lon)
	require.NoError(t, err)
	return c
}

func mustZone(t *testing.T, name string, lat, lon, radiusKm float64) georisk.HazardZone {
	t.Helper()
	zone, err := georisk.NewHazardZone(name, mustCoordinate(t, lat, lon), radiusKm)
	require.NoError(t, err)
	return zone
}

func buildRoute(t *testing.T, name string, points ...[2]float64) *georisk.Route {
	t.Helper()
	route := georisk.NewRoute(name)
	for _, p := range points {
		require.NoError(t, route.AddWaypointLatLon(p[0], p[1]))
	}
	return route
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		a, b       [2]float64
		expectedKm float64
		tolerance  float64
	}{
		{
			name:       "same point",
			a:          [2]float64{34.0522, -118.2437},
			b:          [2]float64{34.0522, -118.2437},
			expectedKm: 0,
			tolerance:  1e-9,
		},
		{
			name:       "los angeles to san diego",
			a:          [2]float64{34.0522, -118.2437},
			b:          [2]float64{32.7157, -117.1611},
			expectedKm: 179.410,
			tolerance:  0.01,
		},
		{
			name:       "new york to london",
			a:          [2]float64{40.7128, -74.0060},
			b:          [2]float64{51.5074, -0.1278},
			expectedKm: 5570.222,
			tolerance:  0.5,
		},
		{
			name:       "short diagonal",
			a:          [2]float64{34.00, -118.00},
			b:          [2]float64{34.05, -118.05},
			expectedKm: 7.221,
			tolerance:  0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCoordinate(t, tt.a[0], tt.a[1])
			b := mustCoordinate(t, tt.b[0], tt.b[1])

			d := georisk.Distance(a, b)
			assert.InDelta(t, tt.expectedKm, d, tt.tolerance)
			assert.Equal(t, d, georisk.Distance(b, a), "distance must be symmetric")
			assert.GreaterOrEqual(t, d, 0.0)
		})
	}
}

func TestMidpoint(t *testing.T) {
	a := mustCoordinate(t, 34.00, -118.00)
	b := mustCoordinate(t, 34.10, -118.10)

	mid := georisk.Midpoint(a, b)
	assert.Equal(t, 34.05, mid.Lat)
	assert.Equal(t, -118.05, mid.Lon)
}

func TestSphericalMidpoint(t *testing.T) {
	t.Run("short segment tracks degree average", func(t *testing.T) {
		a := mustCoordinate(t, 34.00, -118.00)
		b := mustCoordinate(t, 34.05, -118.05)

		flat := georisk.Midpoint(a, b)
		geo := georisk.SphericalMidpoint(a, b)

		assert.InDelta(t, flat.Lat, geo.Lat, 0.001)
		assert.InDelta(t, flat.Lon, geo.Lon, 0.001)
	})

	t.Run("antimeridian crossing", func(t *testing.T) {
		a := mustCoordinate(t, 0, 179.5)
		b := mustCoordinate(t, 0, -179.5)

		geo := georisk.SphericalMidpoint(a, b)
		assert.InDelta(t, 0, geo.Lat, 1e-9)
		assert.InDelta(t, 180, abs(geo.Lon), 1e-9, "midpoint must sit on the antimeridian")

		flat := georisk.Midpoint(a, b)
		assert.Equal(t, 0.0, flat.Lon, "degree averaging lands on the wrong side of the globe")
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestProximity(t *testing.T) {
	center := mustCoordinate(t, 34.05, -118.05)
	zone, err := georisk.NewHazardZone("Test Zone", center, 10)
	require.NoError(t, err)

	t.Run("at center", func(t *testing.T) {
		assert.Equal(t, 1.0, georisk.Proximity(center, zone))
	})

	t.Run("inside zone", func(t *testing.T) {
		p := georisk.Proximity(mustCoordinate(t, 34.025, -118.025), zone)
		assert.InDelta(t, 0.639, p, 0.001)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	})

	t.Run("at the edge", func(t *testing.T) {
		point := mustCoordinate(t, 34.10, -118.10)
		edgeZone, err := georisk.NewHazardZone("Edge", center, georisk.Distance(point, center))
		require.NoError(t, err)

		assert.Equal(t, 0.0, georisk.Proximity(point, edgeZone))
	})

	t.Run("beyond the edge", func(t *testing.T) {
		assert.Equal(t, 0.0, georisk.Proximity(mustCoordinate(t, 35.00, -119.00), zone))
	})
}

func TestAnalyzer_Classify(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())

	tests := []struct {
		score float64
		want  georisk.RiskLevel
	}{
		{score: 0, want: georisk.RiskLevelLow},
		{score: 15, want: georisk.RiskLevelLow},
		{score: 30, want: georisk.RiskLevelLow},
		{score: 30.01, want: georisk.RiskLevelMedium},
		{score: 45, want: georisk.RiskLevelMedium},
		{score: 60, want: georisk.RiskLevelMedium},
		{score: 60.01, want: georisk.RiskLevelHigh},
		{score: 100, want: georisk.RiskLevelHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %.2f", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.Classify(tt.score))
		})
	}
}

func TestNewAnalyzer_FillsDefaults(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.AnalyzerConfig{})

	assert.Equal(t, georisk.RiskLevelLow, analyzer.Classify(30))
	assert.Equal(t, georisk.RiskLevelMedium, analyzer.Classify(45))
	assert.Equal(t, georisk.RiskLevelHigh, analyzer.Classify(61))
}

func TestAnalyzer_AnalyzeRoute_TooFewWaypoints(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())

	t.Run("nil route", func(t *testing.T) {
		_, err := analyzer.AnalyzeRoute(nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, georisk.ErrInvalidRoute)
	})

	t.Run("empty route", func(t *testing.T) {
		_, err := analyzer.AnalyzeRoute(georisk.NewRoute("Empty"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, georisk.ErrInvalidRoute)
	})

	t.Run("single waypoint", func(t *testing.T) {
		route := georisk.NewRoute("Single")
		require.NoError(t, route.AddWaypointLatLon(34.05, -118.05))

		_, err := analyzer.AnalyzeRoute(route, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, georisk.ErrInvalidRoute)
	})
}

func TestAnalyzer_AnalyzeRoute_NoZones(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Empty Desert", [2]float64{34.0, -118.0}, [2]float64{34.9, -118.0})

	result, err := analyzer.AnalyzeRoute(route, nil)
	require.NoError(t, err)

	assert.InDelta(t, 100.075, result.TotalDistanceKm, 0.01)
	assert.Equal(t, 0.0, result.RiskScore)
	assert.Equal(t, georisk.RiskLevelLow, result.RiskLevel)
	assert.Equal(t, 0, result.AffectedSegments)
	assert.Equal(t, 0, result.ZonesAffecting)
	assert.Equal(t, []string{"Route does not pass through any hazard zones"}, result.RiskFactors)
}

func TestAnalyzer_AnalyzeRoute_ZoneOutOfReach(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Coastal", [2]float64{34.0, -118.0}, [2]float64{34.9, -118.0})
	zones := []georisk.HazardZone{mustZone(t, "Far Zone", 40.0, -100.0, 25)}

	result, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.RiskScore)
	assert.Equal(t, georisk.RiskLevelLow, result.RiskLevel)
	assert.Equal(t, 0, result.ZonesAffecting)
	assert.Equal(t, []string{"Route does not pass through any hazard zones"}, result.RiskFactors)
}

func TestAnalyzer_AnalyzeRoute_SingleZone(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Test Route",
		[2]float64{34.00, -118.00},
		[2]float64{34.05, -118.05},
		[2]float64{34.10, -118.10})
	zones := []georisk.HazardZone{mustZone(t, "Test Zone", 34.05, -118.05, 10)}

	result, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)

	// Each ~7.22km segment midpoint sits ~3.61km from the zone center,
	// giving proximity ~0.64 and segment risk ~4.61.
	assert.InDelta(t, 14.4403, result.TotalDistanceKm, 0.001)
	assert.InDelta(t, 63.899, result.RiskScore, 0.01)
	assert.Equal(t, georisk.RiskLevelHigh, result.RiskLevel)
	assert.Equal(t, 2, result.AffectedSegments)
	assert.Equal(t, 1, result.ZonesAffecting)

	require.Len(t, result.RiskFactors, 2)
	assert.Equal(t, "Segment 1→2 (7.22 km): Affected by Test Zone (proximity: 0.64)", result.RiskFactors[0])
	assert.Equal(t, "Segment 2→3 (7.22 km): Affected by Test Zone (proximity: 0.64)", result.RiskFactors[1])
}

func TestAnalyzer_AnalyzeRoute_MultipleZonesOneSegment(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Two Zones", [2]float64{34.00, -118.00}, [2]float64{34.10, -118.10})
	zones := []georisk.HazardZone{
		mustZone(t, "Alpha", 34.05, -118.05, 10),
		mustZone(t, "Bravo", 34.06, -118.06, 10),
	}

	result, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)

	// Midpoint sits exactly on Alpha's center and ~1.44km from Bravo's, so
	// the raw score of ~185 clamps to 100.
	assert.Equal(t, 100.0, result.RiskScore)
	assert.Equal(t, georisk.RiskLevelHigh, result.RiskLevel)
	assert.Equal(t, 1, result.AffectedSegments)
	assert.Equal(t, 2, result.ZonesAffecting)

	require.Len(t, result.RiskFactors, 1)
	assert.Equal(t,
		"Segment 1→2 (14.44 km): Affected by Alpha (proximity: 1.00), Bravo (proximity: 0.86)",
		result.RiskFactors[0])
}

func TestAnalyzer_AnalyzeRoute_DuplicateZonesCountSeparately(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Duplicates", [2]float64{34.00, -118.00}, [2]float64{34.10, -118.10})
	zone := mustZone(t, "Twin", 34.05, -118.05, 10)

	result, err := analyzer.AnalyzeRoute(route, []georisk.HazardZone{zone, zone})
	require.NoError(t, err)

	assert.Equal(t, 2, result.ZonesAffecting, "each list entry counts even when identical")
}

func TestAnalyzer_AnalyzeRoute_ZeroLengthRoute(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Parked", [2]float64{34.05, -118.05}, [2]float64{34.05, -118.05})
	zones := []georisk.HazardZone{mustZone(t, "Overhead", 34.05, -118.05, 10)}

	result, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)

	// Zero total distance short-circuits normalization to a zero score even
	// though the zone registers on the degenerate segment.
	assert.Equal(t, 0.0, result.TotalDistanceKm)
	assert.Equal(t, 0.0, result.RiskScore)
	assert.Equal(t, georisk.RiskLevelLow, result.RiskLevel)
	assert.Equal(t, 1, result.AffectedSegments)
	assert.Equal(t, 1, result.ZonesAffecting)
}

func TestAnalyzer_AnalyzeRoute_ScoreShiftInvariance(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())

	base := buildRoute(t, "Base",
		[2]float64{34.00, -118.00},
		[2]float64{34.05, -118.05},
		[2]float64{34.10, -118.10})
	baseResult, err := analyzer.AnalyzeRoute(base, []georisk.HazardZone{mustZone(t, "Zone", 34.05, -118.05, 10)})
	require.NoError(t, err)

	shifted := buildRoute(t, "Shifted",
		[2]float64{35.00, -118.00},
		[2]float64{35.05, -118.05},
		[2]float64{35.10, -118.10})
	shiftedResult, err := analyzer.AnalyzeRoute(shifted, []georisk.HazardZone{mustZone(t, "Zone", 35.05, -118.05, 10)})
	require.NoError(t, err)

	// The score is a ratio, so shifting route and zone together barely
	// moves it despite the sphere's non-linearity.
	assert.InDelta(t, baseResult.RiskScore, shiftedResult.RiskScore, 1.0)
}

func TestAnalyzer_AnalyzeRoute_GeodesicMidpoint(t *testing.T) {
	route := buildRoute(t, "Dateline", [2]float64{0, 179.0}, [2]float64{0, -179.0})
	zones := []georisk.HazardZone{mustZone(t, "Dateline Zone", 0, -180, 100)}

	flat := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	flatResult, err := flat.AnalyzeRoute(route, zones)
	require.NoError(t, err)
	assert.Equal(t, 0.0, flatResult.RiskScore, "degree-average midpoint lands half a world away")
	assert.Equal(t, georisk.RiskLevelLow, flatResult.RiskLevel)

	geo := georisk.NewAnalyzer(georisk.AnalyzerConfig{GeodesicMidpoint: true})
	geoResult, err := geo.AnalyzeRoute(route, zones)
	require.NoError(t, err)
	assert.Equal(t, 100.0, geoResult.RiskScore)
	assert.Equal(t, georisk.RiskLevelHigh, geoResult.RiskLevel)
	assert.Equal(t, 1, geoResult.ZonesAffecting)
}

func TestAnalyzer_AnalyzeRoute_DoesNotMutateInputs(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Stable", [2]float64{34.00, -118.00}, [2]float64{34.10, -118.10})
	zones := []georisk.HazardZone{mustZone(t, "Zone", 34.05, -118.05, 10)}

	before := route.Waypoints()
	_, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)

	assert.Equal(t, before, route.Waypoints())
	assert.Equal(t, "Zone", zones[0].Name)
	assert.Equal(t, 10.0, zones[0].RadiusKm)
}

func TestAnalyzer_AnalyzeRoute_RepeatedCallsIdentical(t *testing.T) {
	analyzer := georisk.NewAnalyzer(georisk.DefaultAnalyzerConfig())
	route := buildRoute(t, "Repeat",
		[2]float64{34.00, -118.00},
		[2]float64{34.05, -118.05},
		[2]float64{34.10, -118.10})
	zones := []georisk.HazardZone{mustZone(t, "Zone", 34.05, -118.05, 10)}

	first, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)
	second, err := analyzer.AnalyzeRoute(route, zones)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
