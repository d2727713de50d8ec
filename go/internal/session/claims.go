package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// tokenClaims are the claims the client reads from an access token. The
// signature is not checked here; the backend remains the authority.
type tokenClaims struct {
	Subject   string
	ExpiresAt *time.Time
}

// parseClaims reads the claims of a JWT access token. ok is false for opaque tokens.
func parseClaims(token string) (tokenClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenClaims{}, false
	}

	out := tokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		out.ExpiresAt = &exp
	}
	return out, true
}

// expired reports whether token is a JWT whose expiry is at or before now
func expired(token string, now time.Time) bool {
	claims, ok := parseClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(*claims.ExpiresAt)
}
