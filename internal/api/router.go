// Package api provides the HTTP API for HazardRoute.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/api/handler"
	"github.com/hazardroute/hazardroute/internal/api/middleware"
	"github.com/hazardroute/hazardroute/internal/auth"
	"github.com/hazardroute/hazardroute/internal/featureflags"
	"github.com/hazardroute/hazardroute/internal/provider/resilience"
	"github.com/hazardroute/hazardroute/internal/zones"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	TokenService       *auth.TokenService
	ZoneService        *zones.Service
	FeatureFlagService *featureflags.Service

	// Pool is nil when running on in-memory storage.
	Pool *pgxpool.Pool

	// Providers tracks feed provider health for the status endpoint.
	Providers *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "hazardroute-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Pool, cfg.Providers)
	metadataHandler := handler.NewMetadataHandler(serviceName, cfg.Version, cfg.BuildTime)
	routesHandler := handler.NewRoutesHandler(cfg.ZoneService, cfg.FeatureFlagService, cfg.Logger)
	zonesHandler := handler.NewZonesHandler(cfg.ZoneService, cfg.FeatureFlagService)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.TokenService)

	// Create rate limit middleware for different endpoint categories
	mutationRateLimit := middleware.RateLimitBySubject(middleware.MutationRateLimit) // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)    // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)      // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", metadataHandler.GetMetadata)
			r.Get("/sample-data", metadataHandler.GetSampleData)
		})

		// Analysis endpoints - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/routes:analyze", routesHandler.AnalyzeRoute)
		r.With(standardRateLimit).Post("/routes:parse", routesHandler.ParseRoute)

		// Zone registry - reads public, mutations authenticated
		r.Route("/zones", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", zonesHandler.ListZones)
			r.With(authMiddleware, mutationRateLimit).Post("/", zonesHandler.CreateZone)
			r.Route("/{zoneId}", func(r chi.Router) {
				r.With(standardRateLimit).Get("/", zonesHandler.GetZone)
				r.With(authMiddleware, mutationRateLimit).Put("/", zonesHandler.UpdateZone)
				r.With(authMiddleware, mutationRateLimit).Delete("/", zonesHandler.DeleteZone)
			})
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)

			// Feature flags management
			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})
		})
	})

	return r
}
