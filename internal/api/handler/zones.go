package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/internal/api/response"
	"github.com/hazardroute/hazardroute/internal/featureflags"
	"github.com/hazardroute/hazardroute/internal/zones"
)

// ZonesHandler handles zone registry endpoints.
type ZonesHandler struct {
	service *zones.Service
	flags   *featureflags.Service
}

// NewZonesHandler creates a new ZonesHandler.
func NewZonesHandler(service *zones.Service, flags *featureflags.Service) *ZonesHandler {
	return &ZonesHandler{service: service, flags: flags}
}

// ListZones handles GET /v1/zones - list registry zones with paging.
func (h *ZonesHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	page, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, r, "failed to list zones")
		return
	}

	response.JSON(w, r, http.StatusOK, page)
}

// CreateZone handles POST /v1/zones - create a registry zone.
func (h *ZonesHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	if h.registryReadOnly(w, r) {
		return
	}

	var input models.ZoneCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	zone, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/zones/%s", zone.ID)
	response.Created(w, r, location, zone)
}

// GetZone handles GET /v1/zones/{zoneId} - get a registry zone.
func (h *ZonesHandler) GetZone(w http.ResponseWriter, r *http.Request) {
	zoneID := chi.URLParam(r, "zoneId")
	if zoneID == "" {
		response.BadRequest(w, r, "zoneId is required", nil)
		return
	}

	zone, err := h.service.Get(r.Context(), zoneID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, zone)
}

// UpdateZone handles PUT /v1/zones/{zoneId} - update a registry zone.
func (h *ZonesHandler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	if h.registryReadOnly(w, r) {
		return
	}

	zoneID := chi.URLParam(r, "zoneId")
	if zoneID == "" {
		response.BadRequest(w, r, "zoneId is required", nil)
		return
	}

	var input models.ZoneUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	zone, err := h.service.Update(r.Context(), zoneID, &input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, zone)
}

// DeleteZone handles DELETE /v1/zones/{zoneId} - delete a registry zone.
func (h *ZonesHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	if h.registryReadOnly(w, r) {
		return
	}

	zoneID := chi.URLParam(r, "zoneId")
	if zoneID == "" {
		response.BadRequest(w, r, "zoneId is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), zoneID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// registryReadOnly rejects the mutation when the registry is flagged
// read-only. Returns true when the response has been written.
func (h *ZonesHandler) registryReadOnly(w http.ResponseWriter, r *http.Request) bool {
	if h.flags != nil && h.flags.IsRegistryReadOnly(r.Context()) {
		response.Conflict(w, r, "zone registry is read-only")
		return true
	}
	return false
}

func (h *ZonesHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *zones.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, zones.ErrZoneNotFound):
		response.NotFound(w, r, "zone not found")
	default:
		response.InternalError(w, r, "zone registry operation failed")
	}
}

// queryInt reads an integer query parameter, falling back on bad input.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
