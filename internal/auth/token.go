// Package auth proves that a client legitimately represents a user id,
// without a directory round trip on the signed-token path.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenMaxAge bounds how long a bearer token stays valid after issue.
// Rotating APP_SECRET_KEY invalidates every outstanding token, which only
// forces re-authentication.
const TokenMaxAge = 30 * 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("invalid bearer token")
	ErrTokenExpired = errors.New("bearer token expired")
)

// SignToken issues a tamper-evident bearer envelope {uid, iat}. Age is
// checked at verification time against iat, so there is no exp claim.
func SignToken(userID string, secret []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"iat": issuedAt.Unix(),
	})
	return token.SignedString(secret)
}

// VerifyToken checks signature and age and returns the embedded user id.
// It is a pure function of (token, secret, now): callers pass the clock,
// and failures come back as ErrTokenInvalid or ErrTokenExpired — never a
// panic, so the Actor Resolver can fall back to guest.
func VerifyToken(tokenString string, secret []byte, now time.Time) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", ErrTokenInvalid
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return "", ErrTokenInvalid
	}

	issuedAt := time.Unix(int64(iat), 0)
	if now.Sub(issuedAt) > TokenMaxAge {
		return "", ErrTokenExpired
	}
	return uid, nil
}
