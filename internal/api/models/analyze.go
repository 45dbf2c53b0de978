package models

// RouteInput describes a route supplied for analysis. Waypoints and
// Polyline are alternative encodings of the same sequence; exactly one
// must be provided.
type RouteInput struct {
	// Name is the route's display label.
	Name string `json:"name"`

	// Waypoints are the route coordinates in travel order.
	Waypoints []Point `json:"waypoints,omitempty"`

	// Polyline is a Google encoded polyline alternative to Waypoints.
	Polyline string `json:"polyline,omitempty"`
}

// ZoneInput describes an inline hazard zone supplied for analysis.
type ZoneInput struct {
	Name     string  `json:"name"`
	Center   Point   `json:"center"`
	RadiusKm float64 `json:"radiusKm"`

	// Weight is an optional display weight carried through to reports.
	// It never affects scoring.
	Weight *float64 `json:"weight,omitempty"`
}

// AnalyzeOptions control optional analysis behavior.
type AnalyzeOptions struct {
	// IncludeReport requests the rendered text report in the response.
	IncludeReport bool `json:"includeReport,omitempty"`

	// GeodesicMidpoint samples segments at the true spherical midpoint
	// instead of the default degree-space average.
	GeodesicMidpoint *bool `json:"geodesicMidpoint,omitempty"`
}

// RouteAnalyzeRequest is the body of POST /v1/routes:analyze.
type RouteAnalyzeRequest struct {
	Route RouteInput `json:"route"`

	// Zones are inline hazard zones to score against.
	Zones []ZoneInput `json:"zones,omitempty"`

	// ZoneIDs select persisted zones from the registry by ID.
	ZoneIDs []string `json:"zoneIds,omitempty"`

	// IncludeRegistryZones scores against every zone in the registry in
	// addition to Zones and ZoneIDs.
	IncludeRegistryZones bool `json:"includeRegistryZones,omitempty"`

	Options AnalyzeOptions `json:"options"`
}

// RouteAnalysisResponse is the result of one route analysis.
type RouteAnalysisResponse struct {
	RouteName        string    `json:"routeName"`
	TotalDistanceKm  float64   `json:"totalDistanceKm"`
	RiskScore        float64   `json:"riskScore"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	AffectedSegments int       `json:"affectedSegments"`
	ZonesAffecting   int       `json:"zonesAffecting"`
	RiskFactors      []string  `json:"riskFactors"`

	// Report is the rendered text report, present only when requested.
	Report *string `json:"report,omitempty"`
}

// RouteParseRequest is the body of POST /v1/routes:parse. Both fields are
// line-oriented text: "lat,lon" per route line and
// "name,lat,lon,radius_km[,risk_weight]" per zone line.
type RouteParseRequest struct {
	RouteName string `json:"routeName,omitempty"`
	RouteText string `json:"routeText"`
	ZonesText string `json:"zonesText,omitempty"`
}

// RouteParseResponse is the structured form of parsed input text.
type RouteParseResponse struct {
	Route RouteInput  `json:"route"`
	Zones []ZoneInput `json:"zones"`
}
