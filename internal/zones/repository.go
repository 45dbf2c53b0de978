package zones

import "context"

// ListOptions contains options for listing zones.
type ListOptions struct {
	Limit  int
	Offset int
}

// ListResult contains the results of listing zones.
type ListResult struct {
	Items []*Zone
	Total int
}

// Repository defines the interface for zone data persistence.
type Repository interface {
	// Get retrieves a zone by ID.
	// Returns ErrZoneNotFound if the zone doesn't exist.
	Get(ctx context.Context, id string) (*Zone, error)

	// GetByName retrieves a zone by its display name.
	// Returns ErrZoneNotFound if no zone has that name.
	GetByName(ctx context.Context, name string) (*Zone, error)

	// List retrieves zones ordered by creation time with pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new zone.
	Create(ctx context.Context, zone *Zone) error

	// Update updates an existing zone.
	Update(ctx context.Context, zone *Zone) error

	// Delete deletes a zone by ID.
	Delete(ctx context.Context, id string) error
}
