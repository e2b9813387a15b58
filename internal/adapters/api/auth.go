package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the token's exp claim is at or before now.
// The client cannot verify the signature, so tokens that are not JWTs or
// carry no exp are left for the backend to judge.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// TokenUserID extracts the user_id claim, if present.
func TokenUserID(token string) (int, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return int(id), true
}
