// Package main provides the entrypoint for the HazardRoute background worker.
//
// The worker refreshes the hazard zone registry from external feed providers,
// either on a fixed interval or driven by Pub/Sub job messages.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/database"
	"github.com/hazardroute/hazardroute/internal/featureflags"
	"github.com/hazardroute/hazardroute/internal/provider/resilience"
	"github.com/hazardroute/hazardroute/internal/worker"
	"github.com/hazardroute/hazardroute/internal/zonefeed"
	"github.com/hazardroute/hazardroute/internal/zonefeed/hazardwatch"
	"github.com/hazardroute/hazardroute/internal/zones"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// DefaultRefreshInterval is the interval between refresh runs when the
// worker is not driven by Pub/Sub.
const DefaultRefreshInterval = 15 * time.Minute

func main() {
	const serviceName = "hazardroute-worker"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting HazardRoute worker")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8081"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect storage. Without DATABASE_URL the worker runs on the
	// in-memory registry, which is only useful for local development.
	var pool *pgxpool.Pool
	var zoneRepo zones.Repository
	var flagRepo featureflags.Repository

	if os.Getenv("DATABASE_URL") != "" {
		dbConfig := database.ConfigFromEnv()
		var err error
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

	registry := zones.NewService(zoneRepo)

	flagService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: flagRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})

	// Build feed providers. Each provider gets its own resilient HTTP
	// client registered for health reporting.
	providers := resilience.NewRegistry()

	providerMetrics, err := resilience.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	var feeds []*zonefeed.Service

	if apiKey := os.Getenv("HAZARDWATCH_API_KEY"); apiKey != "" {
		client := hazardwatch.NewClient(hazardwatch.ClientConfig{
			APIKey:   apiKey,
			BaseURL:  os.Getenv("HAZARDWATCH_BASE_URL"),
			Registry: providers,
			Metrics:  providerMetrics,
			Logger:   log,
		})
		feeds = append(feeds, zonefeed.NewService(client, registry, log))
		log.Info().Str("provider", client.Name()).Msg("feed provider configured")
	}

	if len(feeds) == 0 {
		log.Warn().Msg("no feed providers configured - refresh runs will be empty")
	}

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:      worker.DefaultRefreshConfig(),
		Logger:      log,
		Feeds:       feeds,
		FlagService: flagService,
	})

	// Health endpoint for liveness probes.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": serviceName,
			"version": Version,
		})
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(refreshJob.MetricsSnapshot())
	})

	healthServer := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", healthServer.Addr).Msg("health server listening")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("health server error")
		}
	}()

	// Run mode: Pub/Sub driven when a subscription is configured,
	// otherwise a fixed-interval ticker loop.
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")

	errCh := make(chan error, 1)

	if projectID != "" && subscription != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Registry:         registry,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer func() {
			if closeErr := handler.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			errCh <- handler.Start(ctx)
		}()

		log.Info().
			Str("project", projectID).
			Str("subscription", subscription).
			Msg("worker running in pubsub mode")
	} else {
		interval := DefaultRefreshInterval
		if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Fatal().Err(err).Str("value", raw).Msg("invalid REFRESH_INTERVAL")
			}
			interval = parsed
		}

		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			// Run once at startup, then on every tick.
			runRefresh(ctx, log, refreshJob)

			for {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case <-ticker.C:
					runRefresh(ctx, log, refreshJob)
				}
			}
		}()

		log.Info().
			Dur("interval", interval).
			Msg("worker running in interval mode")
	}

	// Wait for interrupt signal or fatal worker error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down worker")
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("worker stopped with error")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

func runRefresh(ctx context.Context, log zerolog.Logger, job *worker.RefreshJob) {
	result := job.Run(ctx)
	if result.Skipped {
		return
	}
	if !job.Healthy(result) {
		log.Warn().
			Int("fetched", result.Fetched).
			Int("failed", result.Failed).
			Msg("refresh run unhealthy")
	}
}
