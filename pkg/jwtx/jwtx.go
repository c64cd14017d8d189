// Package jwtx wraps golang-jwt with the small claim surface this service
// needs: HMAC-signed, always-expiring tokens with one secret per token class.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single verification failure. Signature mismatch,
// malformed structure, wrong issuer and expiry all collapse into it so that
// callers cannot leak which check failed.
var ErrInvalidToken = errors.New("jwtx: invalid or expired token")

// ErrMissingExpiry reports an attempt to issue a token without a positive TTL.
// Non-expiring tokens are not issued, ever.
var ErrMissingExpiry = errors.New("jwtx: token ttl must be positive")

// Claims carried by both session and invitation tokens. Unused fields are
// omitted from the wire form.
type Claims struct {
	jwt.RegisteredClaims

	// Scope names the principal partition a session token was issued for.
	Scope string `json:"scope,omitempty"`

	// OrgID, Email and Kind describe an invitation claim.
	OrgID string `json:"org_id,omitempty"`
	Email string `json:"email,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// Codec issues and verifies HS256 tokens under one shared secret. Distinct
// token classes (sessions vs invitations) use distinct Codec instances so
// compromise of one secret cannot forge the other class.
type Codec struct {
	secret []byte
	issuer string

	// Now is the clock used for issuance and expiry checks. Nil means
	// time.Now; tests override it to mint expired tokens.
	Now func() time.Time
}

func NewCodec(secret []byte, issuer string) *Codec {
	return &Codec{secret: secret, issuer: issuer}
}

func (c *Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Issue signs claims with a mandatory expiry of now+ttl. The registered
// iss/iat/nbf/jti fields are stamped here; callers only provide the
// domain-specific fields.
func (c *Codec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrMissingExpiry
	}

	now := c.now().UTC()
	claims.Issuer = c.issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.ID = newJTI()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims. Every failure
// mode maps to ErrInvalidToken.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
