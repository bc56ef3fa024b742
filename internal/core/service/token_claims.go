package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is what the client reads out of an access token for display.
// The signature is not checked; the backend stays the only authority.
type tokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

func parseTokenClaims(token string) (tokenClaims, bool) {
	if token == "" {
		return tokenClaims{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tokenClaims{}, false
	}

	var out tokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}
