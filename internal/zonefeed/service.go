package zonefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/zones"
)

// Service refreshes the zone registry from a feed provider.
type Service struct {
	provider Provider
	registry *zones.Service
	logger   zerolog.Logger
}

// NewService creates a new feed ingestion service.
func NewService(provider Provider, registry *zones.Service, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		registry: registry,
		logger:   logger,
	}
}

// ProviderName returns the name of the underlying feed provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// RefreshResult summarizes one feed refresh.
type RefreshResult struct {
	Provider string
	Fetched  int
	Created  int
	Updated  int
	Failed   int
	Duration time.Duration
}

// Refresh fetches the provider's zone set and upserts each zone into the
// registry by name. Zones the registry rejects (invalid geometry) are
// counted as failed and skipped; the refresh continues. A fetch failure
// aborts the refresh entirely.
func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()

	feedZones, err := s.provider.FetchZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching zones from %s: %w", s.provider.Name(), err)
	}

	result := &RefreshResult{
		Provider: s.provider.Name(),
		Fetched:  len(feedZones),
	}

	for _, fz := range feedZones {
		created, err := s.registry.UpsertByName(ctx, zones.Upsert{
			Name:        fz.Name,
			Center:      zones.Point{Lat: fz.Lat, Lon: fz.Lon},
			RadiusKm:    fz.RadiusKm,
			Weight:      fz.Weight,
			Description: fz.Description,
		})
		if err != nil {
			result.Failed++
			s.logger.Warn().
				Err(err).
				Str("provider", s.provider.Name()).
				Str("zone", fz.Name).
				Msg("skipping feed zone")
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	result.Duration = time.Since(start)

	s.logger.Info().
		Str("provider", result.Provider).
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("zone feed refresh completed")

	return result, nil
}
