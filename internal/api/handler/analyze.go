package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/internal/api/response"
	"github.com/hazardroute/hazardroute/internal/featureflags"
	"github.com/hazardroute/hazardroute/internal/georisk"
	"github.com/hazardroute/hazardroute/internal/report"
	"github.com/hazardroute/hazardroute/internal/zones"
	"github.com/hazardroute/hazardroute/pkg/polyline"
)

// Input size limits for analysis requests.
const (
	MaxRouteWaypoints = 500
	MaxInlineZones    = 100
)

// DefaultRouteName is used when the request omits the route name.
const DefaultRouteName = "Unnamed Route"

// RoutesHandler handles route analysis endpoints.
type RoutesHandler struct {
	registry *zones.Service
	flags    *featureflags.Service
	logger   zerolog.Logger
}

// NewRoutesHandler creates a new RoutesHandler.
func NewRoutesHandler(registry *zones.Service, flags *featureflags.Service, logger zerolog.Logger) *RoutesHandler {
	return &RoutesHandler{
		registry: registry,
		flags:    flags,
		logger:   logger,
	}
}

// AnalyzeRoute handles POST /v1/routes:analyze - score a route against hazard zones.
func (h *RoutesHandler) AnalyzeRoute(w http.ResponseWriter, r *http.Request) {
	var input models.RouteAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	route, fieldErrors := h.buildRoute(input.Route)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid route", fieldErrors)
		return
	}

	hazards, fieldErrors, notFoundID := h.collectZones(r, input)
	if notFoundID != "" {
		response.NotFound(w, r, fmt.Sprintf("zone %q not found", notFoundID))
		return
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid zones", fieldErrors)
		return
	}

	analyzer := georisk.NewAnalyzer(georisk.AnalyzerConfig{
		GeodesicMidpoint: h.geodesicMidpoint(r, input.Options),
	})

	result, err := analyzer.AnalyzeRoute(route, hazardZones(hazards))
	if err != nil {
		var routeErr *georisk.RouteError
		if errors.As(err, &routeErr) {
			response.BadRequest(w, r, routeErr.Error(), []models.FieldError{
				{Field: "route.waypoints", Message: routeErr.Error()},
			})
			return
		}
		h.logger.Error().Err(err).Msg("route analysis failed")
		response.InternalError(w, r, "route analysis failed")
		return
	}

	resp := models.RouteAnalysisResponse{
		RouteName:        route.Name(),
		TotalDistanceKm:  result.TotalDistanceKm,
		RiskScore:        result.RiskScore,
		RiskLevel:        models.RiskLevel(result.RiskLevel),
		AffectedSegments: result.AffectedSegments,
		ZonesAffecting:   result.ZonesAffecting,
		RiskFactors:      result.RiskFactors,
	}

	if input.Options.IncludeReport && !h.flags.IsReportTextDisabled(r.Context()) {
		text := report.Render(result) + report.InputSummary(route, hazards)
		resp.Report = &text
	}

	h.logger.Debug().
		Str("route", route.Name()).
		Float64("risk_score", result.RiskScore).
		Str("risk_level", string(result.RiskLevel)).
		Msg("route analyzed")

	response.JSON(w, r, http.StatusOK, resp)
}

// ParseRoute handles POST /v1/routes:parse - parse text input into structured form.
func (h *RoutesHandler) ParseRoute(w http.ResponseWriter, r *http.Request) {
	var input models.RouteParseRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.RouteText == "" {
		response.BadRequest(w, r, "routeText is required", []models.FieldError{
			{Field: "routeText", Message: "is required"},
		})
		return
	}

	resp, fieldErrors := ParseRouteText(input)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid input text", fieldErrors)
		return
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// buildRoute validates the route input and constructs the analyzer route.
func (h *RoutesHandler) buildRoute(input models.RouteInput) (*georisk.Route, []models.FieldError) {
	name := input.Name
	if name == "" {
		name = DefaultRouteName
	}

	waypoints := input.Waypoints
	switch {
	case len(waypoints) > 0 && input.Polyline != "":
		return nil, []models.FieldError{
			{Field: "route", Message: "provide either waypoints or polyline, not both"},
		}
	case len(waypoints) == 0 && input.Polyline == "":
		return nil, []models.FieldError{
			{Field: "route", Message: "waypoints or polyline is required"},
		}
	case input.Polyline != "":
		for _, c := range polyline.Decode(input.Polyline) {
			waypoints = append(waypoints, models.Point{Lat: c.Lat, Lon: c.Lon})
		}
		if len(waypoints) == 0 {
			return nil, []models.FieldError{
				{Field: "route.polyline", Message: "decodes to no coordinates"},
			}
		}
	}

	if len(waypoints) > MaxRouteWaypoints {
		return nil, []models.FieldError{
			{Field: "route.waypoints", Message: fmt.Sprintf("at most %d waypoints allowed", MaxRouteWaypoints)},
		}
	}

	route := georisk.NewRoute(name)
	var fieldErrors []models.FieldError
	for i, p := range waypoints {
		if err := route.AddWaypointLatLon(p.Lat, p.Lon); err != nil {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   fmt.Sprintf("route.waypoints[%d]", i),
				Message: err.Error(),
			})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	return route, nil
}

// collectZones gathers the hazard zones the request selects: inline zones,
// registry zones by ID, and optionally the whole registry. Returns the first
// unknown zone ID separately so the handler can answer 404.
func (h *RoutesHandler) collectZones(r *http.Request, input models.RouteAnalyzeRequest) ([]report.ZoneDetail, []models.FieldError, string) {
	var details []report.ZoneDetail
	var fieldErrors []models.FieldError

	if len(input.Zones) > MaxInlineZones {
		return nil, []models.FieldError{
			{Field: "zones", Message: fmt.Sprintf("at most %d inline zones allowed", MaxInlineZones)},
		}, ""
	}

	for i, z := range input.Zones {
		detail, errs := inlineZoneDetail(i, z)
		if len(errs) > 0 {
			fieldErrors = append(fieldErrors, errs...)
			continue
		}
		details = append(details, detail)
	}

	for _, zoneID := range input.ZoneIDs {
		zone, err := h.registry.GetDomain(r.Context(), zoneID)
		if err != nil {
			if errors.Is(err, zones.ErrZoneNotFound) {
				return nil, nil, zoneID
			}
			h.logger.Error().Err(err).Str("zone_id", zoneID).Msg("zone lookup failed")
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: "zoneIds", Message: "zone lookup failed",
			})
			continue
		}
		detail, err := registryZoneDetail(zone)
		if err != nil {
			h.logger.Warn().Err(err).Str("zone_id", zoneID).Msg("skipping invalid registry zone")
			continue
		}
		details = append(details, detail)
	}

	if input.IncludeRegistryZones {
		all, err := h.registry.ListAll(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("registry listing failed")
			fieldErrors = append(fieldErrors, models.FieldError{
				Field: "includeRegistryZones", Message: "registry listing failed",
			})
		}
		for _, zone := range all {
			if containsZone(details, zone.Name) {
				continue
			}
			detail, err := registryZoneDetail(zone)
			if err != nil {
				continue
			}
			details = append(details, detail)
		}
	}

	return details, fieldErrors, ""
}

// geodesicMidpoint resolves the midpoint mode: the request option wins,
// otherwise the flag default applies.
func (h *RoutesHandler) geodesicMidpoint(r *http.Request, opts models.AnalyzeOptions) bool {
	if opts.GeodesicMidpoint != nil {
		return *opts.GeodesicMidpoint
	}
	return h.flags.IsGeodesicMidpointDefault(r.Context())
}

// ParseRouteText parses route and zone text into the structured response form.
// Shared with the sample-data endpoint tests.
func ParseRouteText(input models.RouteParseRequest) (*models.RouteParseResponse, []models.FieldError) {
	var fieldErrors []models.FieldError

	waypoints, err := parseWaypointText(input.RouteText)
	if err != nil {
		fieldErrors = append(fieldErrors, *err)
	}

	zoneInputs, errs := parseZoneText(input.ZonesText)
	fieldErrors = append(fieldErrors, errs...)

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	name := input.RouteName
	if name == "" {
		name = DefaultRouteName
	}

	return &models.RouteParseResponse{
		Route: models.RouteInput{
			Name:      name,
			Waypoints: waypoints,
		},
		Zones: zoneInputs,
	}, nil
}

func inlineZoneDetail(index int, z models.ZoneInput) (report.ZoneDetail, []models.FieldError) {
	var errs []models.FieldError
	field := func(name string) string { return fmt.Sprintf("zones[%d].%s", index, name) }

	if z.Name == "" {
		errs = append(errs, models.FieldError{Field: field("name"), Message: "is required"})
	}
	center, err := georisk.NewCoordinate(z.Center.Lat, z.Center.Lon)
	if err != nil {
		errs = append(errs, models.FieldError{Field: field("center"), Message: err.Error()})
	}
	if z.Weight != nil && *z.Weight <= 0 {
		errs = append(errs, models.FieldError{Field: field("weight"), Message: "must be positive"})
	}
	if len(errs) > 0 {
		return report.ZoneDetail{}, errs
	}

	hazard, err := georisk.NewHazardZone(z.Name, center, z.RadiusKm)
	if err != nil {
		return report.ZoneDetail{}, []models.FieldError{
			{Field: field("radiusKm"), Message: err.Error()},
		}
	}

	detail := report.ZoneDetail{Zone: hazard}
	if z.Weight != nil {
		detail.Weight = *z.Weight
	}
	return detail, nil
}

func registryZoneDetail(zone *zones.Zone) (report.ZoneDetail, error) {
	hazard, err := zones.ToHazardZone(zone)
	if err != nil {
		return report.ZoneDetail{}, err
	}
	detail := report.ZoneDetail{Zone: hazard}
	if zone.Weight != nil {
		detail.Weight = *zone.Weight
	}
	return detail, nil
}

func containsZone(details []report.ZoneDetail, name string) bool {
	for _, d := range details {
		if d.Zone.Name == name {
			return true
		}
	}
	return false
}

func hazardZones(details []report.ZoneDetail) []georisk.HazardZone {
	hazards := make([]georisk.HazardZone, 0, len(details))
	for _, d := range details {
		hazards = append(hazards, d.Zone)
	}
	return hazards
}
