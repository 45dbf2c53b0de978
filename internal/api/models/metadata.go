package models

// Metadata describes the service and the fixed parameters of the scoring
// model, for clients that render or validate inputs.
type Metadata struct {
	Service       string     `json:"service"`
	Version       string     `json:"version"`
	BuildTime     string     `json:"buildTime"`
	EarthRadiusKm float64    `json:"earthRadiusKm"`
	RiskBands     []RiskBand `json:"riskBands"`
	Limits        InputLimits `json:"limits"`
}

// RiskBand describes one classification band. MaxScore is the inclusive
// upper bound of the band; the highest band omits it.
type RiskBand struct {
	Level    RiskLevel `json:"level"`
	MaxScore *float64  `json:"maxScore,omitempty"`
}

// InputLimits describes the accepted input sizes for analysis requests.
type InputLimits struct {
	MaxWaypoints   int     `json:"maxWaypoints"`
	MaxInlineZones int     `json:"maxInlineZones"`
	MinLatitude    float64 `json:"minLatitude"`
	MaxLatitude    float64 `json:"maxLatitude"`
	MinLongitude   float64 `json:"minLongitude"`
	MaxLongitude   float64 `json:"maxLongitude"`
}

// SampleData is the demo route and zone set, in structured, text, and
// polyline-encoded forms.
type SampleData struct {
	Route     RouteInput  `json:"route"`
	RouteText string      `json:"routeText"`
	Polyline  string      `json:"polyline"`
	Zones     []ZoneInput `json:"zones"`
	ZonesText string      `json:"zonesText"`
}
