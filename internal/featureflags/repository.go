package featureflags

import (
	"context"
	"errors"
)

// ErrFlagNotFound is returned when no flag exists under the requested key.
var ErrFlagNotFound = errors.New("feature flag not found")

// Repository stores feature flags.
type Repository interface {
	// GetFlag returns the flag stored under key, or ErrFlagNotFound.
	GetFlag(ctx context.Context, key string) (*Flag, error)

	// GetAllFlags returns every stored flag keyed by flag key.
	GetAllFlags(ctx context.Context) (map[string]*Flag, error)

	// SetFlag upserts one flag.
	SetFlag(ctx context.Context, flag *Flag) error

	// SetFlags upserts a batch of flags; persistent implementations apply
	// the batch atomically.
	SetFlags(ctx context.Context, flags []*Flag) error

	// DeleteFlag removes the flag under key. Deleting a missing key is
	// not an error.
	DeleteFlag(ctx context.Context, key string) error
}
