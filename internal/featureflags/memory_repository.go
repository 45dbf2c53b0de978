package featureflags

import (
	"context"
	"sync"
	"time"
)

// InMemoryRepository keeps flags in a map. Used in tests and when the
// service runs without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	flags map[string]*Flag
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{flags: make(map[string]*Flag)}
}

// NewInMemoryRepositoryWithFlags creates an in-memory repository seeded
// with the given flags.
func NewInMemoryRepositoryWithFlags(seed map[string]*Flag) *InMemoryRepository {
	r := NewInMemoryRepository()
	for key, flag := range seed {
		r.flags[key] = flag
	}
	return r
}

// GetFlag returns the flag stored under key.
func (r *InMemoryRepository) GetFlag(_ context.Context, key string) (*Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flag, ok := r.flags[key]
	if !ok {
		return nil, ErrFlagNotFound
	}
	return flag, nil
}

// GetAllFlags returns a copy of the stored flag map.
func (r *InMemoryRepository) GetAllFlags(_ context.Context) (map[string]*Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Flag, len(r.flags))
	for key, flag := range r.flags {
		out[key] = flag
	}
	return out, nil
}

// SetFlag upserts one flag, stamping UpdatedAt.
func (r *InMemoryRepository) SetFlag(_ context.Context, flag *Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flag.UpdatedAt = time.Now()
	r.flags[flag.Key] = flag
	return nil
}

// SetFlags upserts a batch of flags with a single timestamp.
func (r *InMemoryRepository) SetFlags(_ context.Context, flags []*Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, flag := range flags {
		flag.UpdatedAt = now
		r.flags[flag.Key] = flag
	}
	return nil
}

// DeleteFlag removes the flag under key.
func (r *InMemoryRepository) DeleteFlag(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.flags, key)
	return nil
}
