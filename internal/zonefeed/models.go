// Package zonefeed imports hazard zone definitions from external feed
// providers into the zone registry.
package zonefeed

import (
	"context"
	"errors"
	"fmt"
)

// Feed errors.
var (
	// ErrProviderUnavailable indicates the feed provider could not be reached.
	ErrProviderUnavailable = errors.New("feed provider unavailable")

	// ErrInvalidFeed indicates the provider returned a malformed feed.
	ErrInvalidFeed = errors.New("invalid feed response")
)

// Error represents a feed provider error.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Zone is one hazard zone definition from a feed.
type Zone struct {
	// Name identifies the zone; the registry upserts by it.
	Name string

	// Lat and Lon are the zone center in decimal degrees.
	Lat float64
	Lon float64

	// RadiusKm is the zone's radius of influence.
	RadiusKm float64

	// Weight is an optional display weight (e.g. magnitude).
	Weight *float64

	// Description is optional descriptive text from the feed.
	Description *string
}

// Provider fetches hazard zone definitions from an external source.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// FetchZones retrieves the full current zone set.
	FetchZones(ctx context.Context) ([]Zone, error)
}
