package zones

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository. It
// backs dev mode when no database is configured, and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	zones map[string]*Zone
}

// NewInMemoryRepository creates a new in-memory zone repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		zones: make(map[string]*Zone),
	}
}

// Get retrieves a zone by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, ok := r.zones[id]
	if !ok {
		return nil, ErrZoneNotFound
	}

	// Return a copy
	cpy := *z
	return &cpy, nil
}

// GetByName retrieves a zone by its display name.
func (r *InMemoryRepository) GetByName(_ context.Context, name string) (*Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, z := range r.zones {
		if z.Name == name {
			cpy := *z
			return &cpy, nil
		}
	}
	return nil, ErrZoneNotFound
}

// List retrieves zones ordered by creation time with pagination.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Zone, 0, len(r.zones))
	for _, z := range r.zones {
		cpy := *z
		all = append(all, &cpy)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	offset := opts.Offset
	if offset > len(all) {
		offset = len(all)
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return &ListResult{
		Items: all[offset:end],
		Total: len(all),
	}, nil
}

// Create creates a new zone.
func (r *InMemoryRepository) Create(_ context.Context, z *Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *z
	r.zones[z.ID] = &cpy
	return nil
}

// Update updates an existing zone.
func (r *InMemoryRepository) Update(_ context.Context, z *Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[z.ID]; !ok {
		return ErrZoneNotFound
	}

	cpy := *z
	r.zones[z.ID] = &cpy
	return nil
}

// Delete deletes a zone by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.zones, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
