// Package main provides the entrypoint for the HazardRoute API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/api"
	"github.com/hazardroute/hazardroute/internal/api/middleware"
	"github.com/hazardroute/hazardroute/internal/auth"
	"github.com/hazardroute/hazardroute/internal/database"
	"github.com/hazardroute/hazardroute/internal/featureflags"
	"github.com/hazardroute/hazardroute/internal/telemetry"
	"github.com/hazardroute/hazardroute/internal/zones"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "hazardroute-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting HazardRoute API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect storage. Without DATABASE_URL the service runs on the
	// in-memory registry (dev mode) and seeds the sample zones.
	var pool *pgxpool.Pool
	var zoneRepo zones.Repository
	var flagRepo featureflags.Repository

	if os.Getenv("DATABASE_URL") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().Msg("database connected")

		zoneRepo = zones.NewPostgresRepository(pool)
		flagRepo = featureflags.NewPostgresRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set - using in-memory storage")
		zoneRepo = zones.NewInMemoryRepository()
		flagRepo = featureflags.NewInMemoryRepository()
	}

	// Initialize zone registry
	zoneService := zones.NewService(zoneRepo)
	if pool == nil || os.Getenv("SEED_SAMPLE_ZONES") == "true" {
		seeded, seedErr := zoneService.SeedSampleZones(ctx)
		if seedErr != nil {
			log.Error().Err(seedErr).Msg("failed to seed sample zones")
		} else if seeded > 0 {
			log.Info().Int("seeded", seeded).Msg("sample zones seeded")
		}
	}
	log.Info().Msg("zone registry initialized")

	// Initialize token service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	tokenService := auth.NewTokenService(auth.TokenConfig{
		SigningKey: jwtSigningKey,
	})
	log.Info().Msg("token service initialized")

	// Initialize feature flags service
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: flagRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flags service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		TokenService:       tokenService,
		ZoneService:        zoneService,
		FeatureFlagService: ffService,
		Pool:               pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
