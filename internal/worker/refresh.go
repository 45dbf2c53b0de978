package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/featureflags"
	"github.com/hazardroute/hazardroute/internal/zonefeed"
)

// RefreshJob refreshes the zone registry from the configured feeds.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	feeds []*zonefeed.Service

	// Flags (optional, nil if not configured)
	flagService *featureflags.Service

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns      int64
	SkippedRuns    int64
	ZonesFetched   int64
	ZonesCreated   int64
	ZonesUpdated   int64
	ZonesFailed    int64
	FeedFailures   int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config      RefreshConfig
	Logger      zerolog.Logger
	Feeds       []*zonefeed.Service
	FlagService *featureflags.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	return &RefreshJob{
		config:      cfg.Config.normalized(),
		logger:      cfg.Logger,
		feeds:       cfg.Feeds,
		flagService: cfg.FlagService,
		metrics:     &RefreshMetrics{},
	}
}

// RunResult contains the result of one refresh job run.
type RunResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Skipped    bool
	TotalFeeds int
	Fetched    int
	Created    int
	Updated    int
	Failed     int
	Errors     []FeedError
}

// FeedError records a feed that could not be refreshed.
type FeedError struct {
	Provider string
	Error    string
}

// Run refreshes all configured feeds. Feeds are refreshed concurrently;
// one feed failing does not stop the others. When the disable_feed_refresh
// flag is set the run is skipped entirely.
func (j *RefreshJob) Run(ctx context.Context) *RunResult {
	startTime := time.Now()
	result := &RunResult{
		StartTime:  startTime,
		TotalFeeds: len(j.feeds),
	}

	if j.flagService != nil && j.flagService.IsFeedRefreshDisabled(ctx) {
		j.logger.Info().Msg("feed refresh disabled by flag, skipping run")
		result.Skipped = true
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		j.updateMetrics(result)
		return result
	}

	j.logger.Info().
		Int("feeds", result.TotalFeeds).
		Int("concurrency", j.config.Concurrency).
		Msg("starting zone feed refresh job")

	feedsChan := make(chan *zonefeed.Service, len(j.feeds))
	resultsChan := make(chan feedResult, len(j.feeds))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, feedsChan, resultsChan)
		}()
	}

	for _, feed := range j.feeds {
		feedsChan <- feed
	}
	close(feedsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for fr := range resultsChan {
		if fr.err != nil {
			result.Errors = append(result.Errors, FeedError{
				Provider: fr.provider,
				Error:    fr.err.Error(),
			})
			continue
		}
		result.Fetched += fr.refresh.Fetched
		result.Created += fr.refresh.Created
		result.Updated += fr.refresh.Updated
		result.Failed += fr.refresh.Failed
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Int("feed_errors", len(result.Errors)).
		Msg("zone feed refresh job completed")

	return result
}

// Healthy reports whether the run should be treated as successful.
// A run fails when any feed could not be fetched, or when more than
// the configured ratio of fetched zones were rejected by the registry.
func (j *RefreshJob) Healthy(result *RunResult) bool {
	if result.Skipped {
		return true
	}
	if len(result.Errors) > 0 {
		return false
	}
	if result.Fetched == 0 {
		return true
	}
	ratio := float64(result.Failed) / float64(result.Fetched)
	return ratio <= j.config.MaxFailureRatio
}

type feedResult struct {
	provider string
	refresh  *zonefeed.RefreshResult
	err      error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, feeds <-chan *zonefeed.Service, results chan<- feedResult) {
	for feed := range feeds {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshFeed(ctx, feed)
		}
	}
}

func (j *RefreshJob) refreshFeed(ctx context.Context, feed *zonefeed.Service) feedResult {
	feedCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	refresh, err := feed.Refresh(feedCtx)
	if err != nil {
		return feedResult{provider: feed.ProviderName(), err: err}
	}
	return feedResult{provider: refresh.Provider, refresh: refresh}
}

func (j *RefreshJob) updateMetrics(result *RunResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	if result.Skipped {
		j.metrics.SkippedRuns++
	}
	j.metrics.ZonesFetched += int64(result.Fetched)
	j.metrics.ZonesCreated += int64(result.Created)
	j.metrics.ZonesUpdated += int64(result.Updated)
	j.metrics.ZonesFailed += int64(result.Failed)
	j.metrics.FeedFailures += int64(len(result.Errors))
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SkippedRuns:     j.metrics.SkippedRuns,
		ZonesFetched:    j.metrics.ZonesFetched,
		ZonesCreated:    j.metrics.ZonesCreated,
		ZonesUpdated:    j.metrics.ZonesUpdated,
		ZonesFailed:     j.metrics.ZonesFailed,
		FeedFailures:    j.metrics.FeedFailures,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"skipped_runs":      m.SkippedRuns,
		"zones_fetched":     m.ZonesFetched,
		"zones_created":     m.ZonesCreated,
		"zones_updated":     m.ZonesUpdated,
		"zones_failed":      m.ZonesFailed,
		"feed_failures":     m.FeedFailures,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
