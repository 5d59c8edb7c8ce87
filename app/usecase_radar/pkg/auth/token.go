// Package auth issues and verifies the HS256 bearer tokens that guard the
// JSON API.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "usecase_radar"

var (
	ErrNoKey        = errors.New("auth: signing key is empty")
	ErrMissingToken = errors.New("auth: missing bearer token")
)

// IssueToken signs a token for subject that expires after ttl.
func IssueToken(key, subject string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrNoKey
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString([]byte(key))
}

// VerifyToken checks signature, issuer and expiry and returns the subject.
func VerifyToken(key, raw string) (string, error) {
	if key == "" {
		return "", ErrNoKey
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}
	return claims.Subject, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(header[len(prefix):]), nil
}
