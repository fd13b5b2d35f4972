package jwtx

import (
	"slices"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is used when no TTL is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

// Claims are the access token claims of an admin session.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID
	SID string `json:"sid,omitempty"`

	// Permission scopes such as "admin:read"
	Scopes []string `json:"scopes,omitempty"`

	Username string `json:"username,omitempty"`

	// RoleID is the single role the user holds; menu grants hang off it.
	RoleID int64 `json:"role_id,omitempty"`
}

// AccessClaimsParams is everything NewAccessClaims needs.
type AccessClaimsParams struct {
	Subject  string
	SID      string
	Username string
	RoleID   int64
	Scopes   []string
	Issuer   string
	Audience []string
	TTL      time.Duration
	Now      time.Time
}

// NewAccessClaims builds claims valid from p.Now for p.TTL.
func NewAccessClaims(p AccessClaimsParams) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings(p.Audience),
			IssuedAt:  jwt.NewNumericDate(p.Now),
			NotBefore: jwt.NewNumericDate(p.Now),
			ExpiresAt: jwt.NewNumericDate(p.Now.Add(ttl)),
			ID:        idx.New().String(),
		},
		SID:      p.SID,
		Scopes:   slices.Clone(p.Scopes),
		Username: p.Username,
		RoleID:   p.RoleID,
	}
}

// HasScope reports whether the token carries scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
