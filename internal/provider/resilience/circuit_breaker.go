// Package resilience wraps outbound HTTP calls to feed providers with a
// circuit breaker, per-attempt timeouts, and retry with exponential backoff.
// A Registry collects the breaker state of every registered provider so the
// ops surface can report provider health.
package resilience

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig configures a single circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in state-change logs.
	Name string

	// MaxRequests allowed through while half-open. Default: 1.
	MaxRequests uint32

	// Interval between count resets while closed. Default: 0 (never reset).
	Interval time.Duration

	// Timeout spent open before probing half-open. Default: 60s.
	Timeout time.Duration

	// ReadyToTrip decides when the breaker opens.
	// Nil means DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is notified of breaker transitions.
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)
}

// DefaultCircuitBreakerConfig returns the standard breaker settings for a
// named provider.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the breaker once at least 5 requests have been
// seen and half or more of them failed.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < 5 {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
}

// NewCircuitBreaker builds a gobreaker instance from the config.
func NewCircuitBreaker[T any](cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	ready := cfg.ReadyToTrip
	if ready == nil {
		ready = DefaultReadyToTrip
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:          cfg.Name,
		MaxRequests:   cfg.MaxRequests,
		Interval:      cfg.Interval,
		Timeout:       cfg.Timeout,
		ReadyToTrip:   ready,
		OnStateChange: cfg.OnStateChange,
	})
}
