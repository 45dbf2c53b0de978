package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/hazardroute/hazardroute/internal/api/models"
)

// RateLimitConfig is a request budget over a sliding window.
type RateLimitConfig struct {
	RequestLimit int
	WindowLength time.Duration
}

// Rate limit tiers used by the router.
var (
	// MutationRateLimit covers zone registry writes.
	MutationRateLimit = RateLimitConfig{RequestLimit: 10, WindowLength: time.Minute}

	// ExpensiveRateLimit covers route analysis and parsing.
	ExpensiveRateLimit = RateLimitConfig{RequestLimit: 30, WindowLength: time.Minute}

	// StandardRateLimit covers everything else.
	StandardRateLimit = RateLimitConfig{RequestLimit: 100, WindowLength: time.Minute}
)

// RateLimitByIP limits by client IP. chi's RealIP middleware runs earlier
// in the chain, so forwarded addresses are already resolved.
func RateLimitByIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return limiter(cfg, httprate.KeyByRealIP)
}

// RateLimitBySubject limits by the authenticated operator subject, falling
// back to the client IP when the request carries no token.
func RateLimitBySubject(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return limiter(cfg, keyBySubjectOrIP)
}

func limiter(cfg RateLimitConfig, key httprate.KeyFunc) func(http.Handler) http.Handler {
	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowLength,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(writeRateLimited),
	)
}

func keyBySubjectOrIP(r *http.Request) (string, error) {
	if subject := GetSubject(r.Context()); subject != "" {
		return "subject:" + subject, nil
	}
	return httprate.KeyByRealIP(r)
}

func writeRateLimited(w http.ResponseWriter, r *http.Request) {
	problem := models.NewTooManyRequests(GetRequestID(r.Context()), "Rate limit exceeded. Please try again later.")
	problem.Instance = r.URL.Path

	// httprate does not expose the window reset time; advise a full window.
	w.Header().Set("Retry-After", strconv.Itoa(60))

	problem.Write(w)
}
