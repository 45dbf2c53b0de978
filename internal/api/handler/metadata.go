package handler

import (
	"net/http"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/internal/api/response"
	"github.com/hazardroute/hazardroute/internal/georisk"
	"github.com/hazardroute/hazardroute/internal/zones"
	"github.com/hazardroute/hazardroute/pkg/geotext"
	"github.com/hazardroute/hazardroute/pkg/polyline"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	service   string
	version   string
	buildTime string
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(service, version, buildTime string) *MetadataHandler {
	return &MetadataHandler{
		service:   service,
		version:   version,
		buildTime: buildTime,
	}
}

// GetMetadata handles GET /v1/metadata - scoring model parameters and limits.
func (h *MetadataHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	cfg := georisk.DefaultAnalyzerConfig()
	lowMax := cfg.LowRiskThreshold
	mediumMax := cfg.HighRiskThreshold

	metadata := models.Metadata{
		Service:       h.service,
		Version:       h.version,
		BuildTime:     h.buildTime,
		EarthRadiusKm: georisk.EarthRadiusKm,
		RiskBands: []models.RiskBand{
			{Level: models.RiskLevelLow, MaxScore: &lowMax},
			{Level: models.RiskLevelMedium, MaxScore: &mediumMax},
			{Level: models.RiskLevelHigh},
		},
		Limits: models.InputLimits{
			MaxWaypoints:   MaxRouteWaypoints,
			MaxInlineZones: MaxInlineZones,
			MinLatitude:    georisk.MinLatitude,
			MaxLatitude:    georisk.MaxLatitude,
			MinLongitude:   georisk.MinLongitude,
			MaxLongitude:   georisk.MaxLongitude,
		},
	}
	response.JSON(w, r, http.StatusOK, metadata)
}

// GetSampleData handles GET /v1/metadata/sample-data - the demo route and
// zone set in structured, text, and polyline forms.
func (h *MetadataHandler) GetSampleData(w http.ResponseWriter, r *http.Request) {
	samplePoints := zones.SampleWaypoints()

	waypoints := make([]models.Point, 0, len(samplePoints))
	textWaypoints := make([]geotext.Waypoint, 0, len(samplePoints))
	coords := make([]polyline.Coordinate, 0, len(samplePoints))
	for _, p := range samplePoints {
		waypoints = append(waypoints, models.Point{Lat: p.Lat, Lon: p.Lon})
		textWaypoints = append(textWaypoints, geotext.Waypoint{Lat: p.Lat, Lon: p.Lon})
		coords = append(coords, polyline.Coordinate{Lat: p.Lat, Lon: p.Lon})
	}

	seeds := zones.SampleZoneSeeds()
	zoneInputs := make([]models.ZoneInput, 0, len(seeds))
	textZones := make([]geotext.Zone, 0, len(seeds))
	for _, seed := range seeds {
		zoneInputs = append(zoneInputs, models.ZoneInput{
			Name:     seed.Name,
			Center:   models.Point{Lat: seed.Center.Lat, Lon: seed.Center.Lon},
			RadiusKm: seed.RadiusKm,
			Weight:   seed.Weight,
		})
		textZone := geotext.Zone{
			Name:     seed.Name,
			Lat:      seed.Center.Lat,
			Lon:      seed.Center.Lon,
			RadiusKm: seed.RadiusKm,
		}
		if seed.Weight != nil {
			textZone.Weight = *seed.Weight
			textZone.HasWeight = true
		}
		textZones = append(textZones, textZone)
	}

	sample := models.SampleData{
		Route: models.RouteInput{
			Name:      zones.SampleRouteName,
			Waypoints: waypoints,
		},
		RouteText: geotext.FormatWaypoints(textWaypoints),
		Polyline:  polyline.Encode(coords),
		Zones:     zoneInputs,
		ZonesText: geotext.FormatZones(textZones),
	}
	response.JSON(w, r, http.StatusOK, sample)
}
