package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a browser session cookie when the
// caller does not pick one.
const DefaultSessionTTL = 12 * time.Hour

// Claims are the session cookie claims. The subject is the username; SID
// points at the server side session row that must still exist for the
// cookie to be honoured.
type Claims struct {
	jwt.RegisteredClaims

	// Session ID (ULID)
	SID string `json:"sid"`

	// Roles granted to the user, informational only.
	Roles []string `json:"roles,omitempty"`
}

// NewSessionClaims builds claims for a freshly created session.
func NewSessionClaims(
	username, sid string,
	roles []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:   sid,
		Roles: roles,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer; an empty expectation accepts anything.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateSession checks the claims carry both a subject and a session id.
func (c *Claims) ValidateSession() error {
	if c.Subject == "" || c.SID == "" {
		return ErrInvalidClaim
	}
	return nil
}
