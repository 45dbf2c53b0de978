// Package auth provides bearer token authentication for operator
// endpoints.
//
// The service issues and validates short-lived HS256 JWTs. Tokens are
// minted out-of-band (deploy tooling holds the shared signing key) and
// presented as Bearer tokens on mutating API calls. There are no user
// accounts, refresh tokens, or third-party identity providers: the only
// subjects are operators and automation.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Defaults for token issuance.
const (
	// DefaultTokenTTL is how long issued tokens are valid. Operator
	// tokens are short-lived; automation re-mints with the signing key.
	DefaultTokenTTL = 1 * time.Hour

	// DefaultIssuer is the issuer claim when none is configured.
	DefaultIssuer = "https://api.hazardroute.io"

	// DefaultAudience is the audience claim when none is configured.
	DefaultAudience = "hazardroute-api"
)

// Predefined token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims represents the claims in operator tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	// SigningKey is the secret key used to sign tokens (required).
	SigningKey string

	// Issuer is the issuer claim for tokens.
	// Default: DefaultIssuer.
	Issuer string

	// Audience is the audience claim for tokens.
	// Default: DefaultAudience.
	Audience string

	// TTL is the validity window for issued tokens.
	// Default: DefaultTokenTTL.
	TTL time.Duration
}

// TokenService issues and validates operator bearer tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
}

// NewTokenService creates a new token service, filling zero config fields
// with defaults.
func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTokenTTL
	}

	return &TokenService{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		ttl:        cfg.TTL,
	}
}

// Generate creates a signed token for the given subject.
func (s *TokenService) Generate(subject string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			ID:        generateTokenID(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate validates a token and returns its subject.
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// generateTokenID produces a random JWT ID claim.
func generateTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure is unrecoverable
		panic(fmt.Sprintf("generating token ID: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
