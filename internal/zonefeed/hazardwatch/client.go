// Package hazardwatch provides a client for the HazardWatch zone feed API.
package hazardwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazardroute/hazardroute/internal/provider/resilience"
	"github.com/hazardroute/hazardroute/internal/zonefeed"
)

const (
	// ProviderName identifies this feed provider.
	ProviderName = "hazardwatch"

	// DefaultBaseURL is the HazardWatch API base URL.
	DefaultBaseURL = "https://feed.hazardwatch.io/v1"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the HazardWatch client.
type ClientConfig struct {
	// APIKey is the HazardWatch API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Metrics records request durations and counts (optional).
	Metrics *resilience.ProviderMetrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a HazardWatch API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	metrics    *resilience.ProviderMetrics
	logger     zerolog.Logger
}

// NewClient creates a new HazardWatch client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		clientCfg.Registry = cfg.Registry
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		registry:   cfg.Registry,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// API response types (from the HazardWatch feed API).

type zonesResponse struct {
	Pagination paginationInfo `json:"pagination"`
	Data       []zoneData     `json:"data"`
}

type zoneData struct {
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	RadiusKm  float64  `json:"radius_km"`
	Magnitude *float64 `json:"magnitude,omitempty"`
	Category  *string  `json:"category,omitempty"`
}

type paginationInfo struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// FetchZones retrieves the full current zone set, following pagination.
func (c *Client) FetchZones(ctx context.Context) ([]zonefeed.Zone, error) {
	var all []zonefeed.Zone
	page := 1

	for {
		zones, lastPage, err := c.fetchZonesPage(ctx, page)
		if err != nil {
			c.recordFailure(err)
			return nil, err
		}

		all = append(all, zones...)

		if page >= lastPage {
			break
		}
		page++
	}

	c.recordSuccess()

	c.logger.Debug().
		Int("zones", len(all)).
		Msg("fetched zones from hazardwatch")

	return all, nil
}

// fetchZonesPage retrieves one page of zones.
func (c *Client) fetchZonesPage(ctx context.Context, page int) (_ []zonefeed.Zone, _ int, err error) {
	if c.metrics != nil {
		start := time.Now()
		defer func() {
			c.metrics.RecordRequest(ProviderName, "fetch-zones", time.Since(start), err)
		}()
	}

	url := fmt.Sprintf("%s/zones?page=%d", c.baseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &zonefeed.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach feed provider",
			Err:      zonefeed.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, c.errorFromStatus(resp.StatusCode)
	}

	var feedResp zonesResponse
	if err := json.NewDecoder(resp.Body).Decode(&feedResp); err != nil {
		return nil, 0, &zonefeed.Error{
			Provider: ProviderName,
			Code:     "DECODE_FAILED",
			Message:  "failed to decode feed response",
			Err:      zonefeed.ErrInvalidFeed,
		}
	}

	zones := make([]zonefeed.Zone, 0, len(feedResp.Data))
	for _, d := range feedResp.Data {
		zones = append(zones, zonefeed.Zone{
			Name:        d.Name,
			Lat:         d.Latitude,
			Lon:         d.Longitude,
			RadiusKm:    d.RadiusKm,
			Weight:      d.Magnitude,
			Description: d.Category,
		})
	}

	lastPage := feedResp.Pagination.LastPage
	if lastPage < 1 {
		lastPage = 1
	}

	return zones, lastPage, nil
}

// errorFromStatus maps an HTTP error status to a feed error.
func (c *Client) errorFromStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &zonefeed.Error{
			Provider: ProviderName,
			Code:     "AUTH_FAILED",
			Message:  "feed provider rejected credentials",
			Err:      zonefeed.ErrProviderUnavailable,
		}
	case status == http.StatusTooManyRequests:
		return &zonefeed.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMITED",
			Message:  "feed provider rate limit exceeded",
			Err:      zonefeed.ErrProviderUnavailable,
		}
	case status >= 500:
		return &zonefeed.Error{
			Provider: ProviderName,
			Code:     "SERVER_ERROR",
			Message:  fmt.Sprintf("feed provider returned status %d", status),
			Err:      zonefeed.ErrProviderUnavailable,
		}
	default:
		return &zonefeed.Error{
			Provider: ProviderName,
			Code:     "UNEXPECTED_STATUS",
			Message:  fmt.Sprintf("feed provider returned status %d", status),
			Err:      zonefeed.ErrInvalidFeed,
		}
	}
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}

// Ensure Client implements the feed provider interface.
var _ zonefeed.Provider = (*Client)(nil)
