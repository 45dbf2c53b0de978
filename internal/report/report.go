// Package report renders human-readable text reports from route risk
// analysis results. Rendering only reads result fields; it never feeds
// back into the numeric analysis.
package report

import (
	"fmt"
	"strings"

	"github.com/hazardroute/hazardroute/internal/georisk"
)

// ZoneDetail pairs a hazard zone with its optional display weight for
// input summaries. The weight is informational only and plays no part in
// scoring; zero means unset.
type ZoneDetail struct {
	Zone   georisk.HazardZone
	Weight float64
}

// String renders the zone line, appending the weight only when set.
func (d ZoneDetail) String() string {
	if d.Weight > 0 {
		return fmt.Sprintf("%s: Center %s, Radius %.2f km, Risk Weight %.1f",
			d.Zone.Name, d.Zone.Center, d.Zone.RadiusKm, d.Weight)
	}
	return d.Zone.String()
}

// Render produces the full analysis report for a result.
func Render(result *georisk.Result) string {
	var sb strings.Builder

	sb.WriteString("=== AUTOMATIC ROUTE RISK ANALYSIS REPORT ===\n\n")
	fmt.Fprintf(&sb, "Total Route Distance: %.2f km\n", result.TotalDistanceKm)
	fmt.Fprintf(&sb, "Computed Risk Score: %.2f / 100\n", result.RiskScore)
	fmt.Fprintf(&sb, "Risk Level: %s\n\n", result.RiskLevel)
	fmt.Fprintf(&sb, "Route Segments Affected: %d\n", result.AffectedSegments)
	fmt.Fprintf(&sb, "Hazard Zones Affecting Route: %d\n\n", result.ZonesAffecting)

	sb.WriteString("Affected Segments:\n")
	for _, factor := range result.RiskFactors {
		sb.WriteString("  • ")
		sb.WriteString(factor)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Risk Assessment:\n")
	switch result.RiskLevel {
	case georisk.RiskLevelLow:
		sb.WriteString("  ✓ This route is SAFE (Risk Score: 0-30)\n")
		sb.WriteString("  The route avoids hazard zones or has minimal exposure.\n")
		sb.WriteString("  Normal travel precautions are sufficient.")
	case georisk.RiskLevelMedium:
		sb.WriteString("  ⚠ This route has MODERATE RISK (Risk Score: 31-60)\n")
		sb.WriteString("  The route passes through or near hazard zones.\n")
		sb.WriteString("  Consider alternative paths or take safety precautions.")
	default:
		sb.WriteString("  ⛔ This route is HIGH RISK (Risk Score: 61-100)\n")
		sb.WriteString("  The route has significant exposure to hazard zones.\n")
		sb.WriteString("  Strongly consider an alternative route or implement\n")
		sb.WriteString("  comprehensive safety measures if this route is necessary.")
	}

	sb.WriteString("\n")
	sb.WriteString("Calculation Method:\n")
	sb.WriteString("  Risk computed automatically from geospatial proximity.\n")
	sb.WriteString("  Formula: (Σ segment_length × proximity) / total_distance × 100\n")
	sb.WriteString("  Proximity = 1 - (distance_to_zone / zone_radius) when inside zone\n")

	return sb.String()
}

// InputSummary produces the trailing summary of what was analyzed.
func InputSummary(route *georisk.Route, zones []ZoneDetail) string {
	var sb strings.Builder

	sb.WriteString("\n=== INPUT SUMMARY ===\n\n")
	fmt.Fprintf(&sb, "Route waypoints: %d\n", route.WaypointCount())
	fmt.Fprintf(&sb, "Hazard zones: %d\n\n", len(zones))

	sb.WriteString("Hazard Zones:\n")
	for _, z := range zones {
		sb.WriteString("  • ")
		sb.WriteString(z.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
