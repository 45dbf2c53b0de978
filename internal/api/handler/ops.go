// Package handler provides HTTP handlers for the HazardRoute API.
package handler

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hazardroute/hazardroute/internal/api/models"
	"github.com/hazardroute/hazardroute/internal/api/response"
	"github.com/hazardroute/hazardroute/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string

	// pool is nil when running on the in-memory registry.
	pool *pgxpool.Pool

	providers *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, pool *pgxpool.Pool, providers *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		pool:      pool,
		providers: providers,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Pings the database when one is configured.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.pool != nil {
		if err := h.pool.Ping(r.Context()); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]interface{}{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and feed provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	statusValue := models.HealthStatusOK

	subsystems := []models.SubsystemStatus{h.storageStatus(r)}
	for _, s := range subsystems {
		if s.Status != models.HealthStatusOK {
			statusValue = models.HealthStatusDegraded
		}
	}

	var providers []models.ProviderStatus
	if h.providers != nil {
		for _, ph := range h.providers.GetAllHealth() {
			ps := providerStatus(ph)
			if ps.Status == models.HealthStatusFail {
				statusValue = models.HealthStatusDegraded
			}
			providers = append(providers, ps)
		}
	}

	status := models.SystemStatus{
		Status:     statusValue,
		Time:       now,
		Subsystems: subsystems,
		Providers:  providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) storageStatus(r *http.Request) models.SubsystemStatus {
	if h.pool == nil {
		detail := "in-memory"
		return models.SubsystemStatus{Name: "storage", Status: models.HealthStatusOK, Detail: &detail}
	}
	if err := h.pool.Ping(r.Context()); err != nil {
		detail := err.Error()
		return models.SubsystemStatus{Name: "storage", Status: models.HealthStatusFail, Detail: &detail}
	}
	return models.SubsystemStatus{Name: "storage", Status: models.HealthStatusOK}
}

func providerStatus(ph *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider: ph.Name,
		Status:   models.HealthStatusOK,
	}
	switch {
	case ph.IsUnhealthy():
		ps.Status = models.HealthStatusFail
	case ph.IsDegraded():
		ps.Status = models.HealthStatusDegraded
	}
	if ph.LastSuccessAt != nil {
		ts := models.Timestamp(*ph.LastSuccessAt)
		ps.LastSuccessAt = &ts
	}
	if ph.LastFailureAt != nil {
		ts := models.Timestamp(*ph.LastFailureAt)
		ps.LastFailureAt = &ts
	}
	if ph.LastError != "" {
		msg := ph.LastError
		ps.Message = &msg
	}
	return ps
}
