package handler

import (
	"errors"
	"fmt"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/pkg/geotext"
)

// parseWaypointText parses route text into API points, mapping a parse
// failure to a field error carrying the offending line number.
func parseWaypointText(text string) ([]models.Point, *models.FieldError) {
	waypoints, err := geotext.ParseWaypoints(text)
	if err != nil {
		return nil, parseFieldError("routeText", err)
	}

	points := make([]models.Point, 0, len(waypoints))
	for _, wp := range waypoints {
		points = append(points, models.Point{Lat: wp.Lat, Lon: wp.Lon})
	}
	return points, nil
}

// parseZoneText parses zone text into API zone inputs. Empty text yields
// an empty slice.
func parseZoneText(text string) ([]models.ZoneInput, []models.FieldError) {
	if text == "" {
		return nil, nil
	}

	parsed, err := geotext.ParseZones(text)
	if err != nil {
		return nil, []models.FieldError{*parseFieldError("zonesText", err)}
	}

	zoneInputs := make([]models.ZoneInput, 0, len(parsed))
	for _, z := range parsed {
		input := models.ZoneInput{
			Name:     z.Name,
			Center:   models.Point{Lat: z.Lat, Lon: z.Lon},
			RadiusKm: z.RadiusKm,
		}
		if z.HasWeight {
			weight := z.Weight
			input.Weight = &weight
		}
		zoneInputs = append(zoneInputs, input)
	}
	return zoneInputs, nil
}

func parseFieldError(field string, err error) *models.FieldError {
	var parseErr *geotext.ParseError
	if errors.As(err, &parseErr) {
		return &models.FieldError{
			Field:   fmt.Sprintf("%s (line %d)", field, parseErr.Line),
			Message: parseErr.Reason,
		}
	}
	return &models.FieldError{Field: field, Message: err.Error()}
}
