package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrCircuitOpen is returned without attempting the request when the
	// provider's circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ClientConfig configures a resilient HTTP client.
type ClientConfig struct {
	// Name identifies the provider behind this client.
	Name string

	// Timeout per HTTP attempt. Default: 10s.
	Timeout time.Duration

	// MaxRetries after the first attempt. Default: 3.
	MaxRetries uint64

	// InitialInterval for the retry backoff. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff. Default: 5s.
	MaxInterval time.Duration

	// CircuitBreaker overrides DefaultCircuitBreakerConfig(Name).
	CircuitBreaker *CircuitBreakerConfig

	// Registry, when set, receives the client under Name so its breaker
	// state shows up in provider health reporting.
	Registry *Registry
}

// DefaultClientConfig returns the standard client settings for a named
// provider.
func DefaultClientConfig(name string) ClientConfig {
	cb := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		CircuitBreaker:  &cb,
	}
}

func (cfg ClientConfig) withDefaults() ClientConfig {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	return cfg
}

// Client is an HTTP client that routes every request through a circuit
// breaker and retries transient failures with exponential backoff.
type Client struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	config  ClientConfig
}

// NewClient creates a resilient client, filling zero config fields with
// defaults. When cfg.Registry is set the client registers itself under
// cfg.Name.
func NewClient(cfg ClientConfig) *Client {
	cfg = cfg.withDefaults()

	cbConfig := cfg.CircuitBreaker
	if cbConfig == nil {
		defaultCB := DefaultCircuitBreakerConfig(cfg.Name)
		cbConfig = &defaultCB
	}

	c := &Client{
		name:    cfg.Name,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: NewCircuitBreaker[*http.Response](*cbConfig), //nolint:bodyclose // type parameter, no body here
		config:  cfg,
	}

	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, c)
	}

	return c
}

// Name returns the provider name this client was built for.
func (c *Client) Name() string {
	return c.name
}

// Do executes the request through the circuit breaker. 5xx responses and
// network errors are retried with backoff until MaxRetries is exhausted;
// the last 5xx response is then returned to the caller. 4xx responses are
// returned as-is without retrying. Returns ErrCircuitOpen immediately when
// the breaker rejects the call.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var last *http.Response

	attempt := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			return c.attempt(ctx, req)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				last = resp
			}
			return err
		}
		last = resp
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		if last != nil {
			return last, nil
		}
		return nil, err
	}

	return last, nil
}

// attempt performs a single HTTP call. 5xx responses come back as errors so
// the breaker counts them as failures.
func (c *Client) attempt(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req.Clone(ctx))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return resp, &ServerError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// CircuitBreakerState returns the breaker's current state.
func (c *Client) CircuitBreakerState() gobreaker.State {
	return c.breaker.State()
}

// CircuitBreakerCounts returns the breaker's request counters.
func (c *Client) CircuitBreakerCounts() gobreaker.Counts {
	return c.breaker.Counts()
}

// ServerError marks an HTTP 5xx response as a retryable failure.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}
