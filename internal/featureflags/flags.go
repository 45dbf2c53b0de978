// Package featureflags provides feature flag management for runtime configuration.
package featureflags

import "time"

// Well-known feature flag keys.
const (
	// FlagGeodesicMidpoint makes the analyzer sample segments at the true
	// spherical midpoint by default instead of the degree-space average.
	FlagGeodesicMidpoint = "geodesic_midpoint"

	// FlagDisableReportText suppresses rendered text reports in analysis
	// responses even when requested.
	FlagDisableReportText = "disable_report_text"

	// FlagRegistryReadOnly rejects zone registry mutations.
	FlagRegistryReadOnly = "registry_read_only"

	// FlagDisableFeedRefresh stops the worker from refreshing zones from
	// the external feed.
	FlagDisableFeedRefresh = "disable_feed_refresh"
)

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates"`
	Reason  string       `json:"reason"`
}

// BoolValue interprets the flag value as a boolean. Numbers count as true
// when non-zero (JSON decoding yields float64). A nil flag or any other
// value type yields defaultValue.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return defaultValue
	}
}

// DefaultFlags returns the default feature flags for the application.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagGeodesicMidpoint: {
			Key:       FlagGeodesicMidpoint,
			Value:     false,
			UpdatedAt: now,
		},
		FlagDisableReportText: {
			Key:       FlagDisableReportText,
			Value:     false,
			UpdatedAt: now,
		},
		FlagRegistryReadOnly: {
			Key:       FlagRegistryReadOnly,
			Value:     false,
			UpdatedAt: now,
		},
		FlagDisableFeedRefresh: {
			Key:       FlagDisableFeedRefresh,
			Value:     false,
			UpdatedAt: now,
		},
	}
}
