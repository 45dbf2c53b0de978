// Package worker provides background job processing for HazardRoute.
package worker

import (
	"time"
)

// RefreshConfig holds configuration for the zone feed refresh job.
type RefreshConfig struct {
	// Concurrency is the number of feeds refreshed concurrently.
	// Default: 2
	Concurrency int

	// Timeout is the timeout for each feed refresh.
	// Default: 60 seconds
	Timeout time.Duration

	// MaxFailureRatio is the fraction of failed zone upserts within a
	// single feed above which the refresh is reported as failed.
	// Default: 0.5
	MaxFailureRatio float64
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency:     2,
		Timeout:         60 * time.Second,
		MaxFailureRatio: 0.5,
	}
}

// normalized returns the config with zero values replaced by defaults.
func (c RefreshConfig) normalized() RefreshConfig {
	def := DefaultRefreshConfig()
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxFailureRatio <= 0 {
		c.MaxFailureRatio = def.MaxFailureRatio
	}
	return c
}
