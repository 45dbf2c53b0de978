package featureflags

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultCacheTTL = time.Minute

// ServiceConfig configures the feature flag service.
type ServiceConfig struct {
	Repository   Repository
	Logger       zerolog.Logger
	CacheTTL     time.Duration
	DefaultFlags map[string]*Flag
}

// Service evaluates feature flags. Reads go through a short-lived
// in-process cache and fall back to compiled-in defaults when the
// repository is unavailable, so flag checks never fail a request.
type Service struct {
	repo         Repository
	logger       zerolog.Logger
	cacheTTL     time.Duration
	defaultFlags map[string]*Flag

	mu          sync.RWMutex
	cache       map[string]*Flag
	cacheExpiry time.Time
}

// NewService builds a Service, filling in the default cache TTL and the
// well-known flag defaults when cfg leaves them unset.
func NewService(cfg ServiceConfig) *Service {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.DefaultFlags == nil {
		cfg.DefaultFlags = DefaultFlags()
	}

	return &Service{
		repo:         cfg.Repository,
		logger:       cfg.Logger,
		cacheTTL:     cfg.CacheTTL,
		defaultFlags: cfg.DefaultFlags,
		cache:        make(map[string]*Flag),
	}
}

// GetFlag returns the flag for key, consulting the cache, then the
// repository, then the defaults. Returns nil for an unknown key.
func (s *Service) GetFlag(ctx context.Context, key string) *Flag {
	if flag := s.getCached(key); flag != nil {
		return flag
	}

	flag, err := s.repo.GetFlag(ctx, key)
	if err == nil {
		s.setCached(key, flag)
		return flag
	}
	if !errors.Is(err, ErrFlagNotFound) {
		s.logger.Warn().Err(err).Str("flag", key).Msg("failed to get feature flag from repository")
	}

	return s.defaultFlags[key]
}

// GetAllFlags returns every flag: repository values layered over the
// defaults. On repository failure the defaults alone are returned.
func (s *Service) GetAllFlags(ctx context.Context) map[string]*Flag {
	result := make(map[string]*Flag, len(s.defaultFlags))
	for k, v := range s.defaultFlags {
		result[k] = v
	}

	flags, err := s.repo.GetAllFlags(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to get feature flags from repository, using defaults")
		return result
	}
	for k, v := range flags {
		result[k] = v
	}

	s.mu.Lock()
	s.cache = flags
	s.cacheExpiry = time.Now().Add(s.cacheTTL)
	s.mu.Unlock()

	return result
}

// SetFlag persists flag and refreshes its cache entry.
func (s *Service) SetFlag(ctx context.Context, flag *Flag) error {
	flag.UpdatedAt = time.Now()
	if err := s.repo.SetFlag(ctx, flag); err != nil {
		return err
	}
	s.setCached(flag.Key, flag)
	return nil
}

// SetFlags persists flags atomically and refreshes their cache entries.
func (s *Service) SetFlags(ctx context.Context, flags []*Flag) error {
	now := time.Now()
	for _, flag := range flags {
		flag.UpdatedAt = now
	}

	if err := s.repo.SetFlags(ctx, flags); err != nil {
		return err
	}

	s.mu.Lock()
	for _, flag := range flags {
		s.cache[flag.Key] = flag
	}
	s.mu.Unlock()

	return nil
}

// InvalidateCache drops cached flags so the next read hits the repository.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Flag)
	s.cacheExpiry = time.Time{}
}

// IsEnabled reports whether the flag for key is truthy.
func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	return s.GetFlag(ctx, key).BoolValue(false)
}

// IsDisabled is the inverse of IsEnabled.
func (s *Service) IsDisabled(ctx context.Context, key string) bool {
	return !s.IsEnabled(ctx, key)
}

func (s *Service) getCached(key string) *Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if time.Now().After(s.cacheExpiry) {
		return nil
	}
	return s.cache[key]
}

func (s *Service) setCached(key string, flag *Flag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = flag
	if s.cacheExpiry.Before(time.Now()) {
		s.cacheExpiry = time.Now().Add(s.cacheTTL)
	}
}

// Convenience accessors for the well-known flags.

// IsGeodesicMidpointDefault reports whether the analyzer should default
// to spherical midpoint sampling.
func (s *Service) IsGeodesicMidpointDefault(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagGeodesicMidpoint)
}

// IsReportTextDisabled reports whether rendered report text is suppressed.
func (s *Service) IsReportTextDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableReportText)
}

// IsRegistryReadOnly reports whether zone registry mutations are rejected.
func (s *Service) IsRegistryReadOnly(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagRegistryReadOnly)
}

// IsFeedRefreshDisabled reports whether the zone feed refresh is paused.
func (s *Service) IsFeedRefreshDisabled(ctx context.Context) bool {
	return s.IsEnabled(ctx, FlagDisableFeedRefresh)
}
