// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// generateToken creates a signed HMAC-SHA256 JWT whose subject is the
// anonymous uid.
func generateToken(issuer, uid string, duration time.Duration, signKey string) (string, error) {
	if issuer == "" || uid == "" || duration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   uid,
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("sign JWT token: %w", err)
	}

	return signed, nil
}

// parseToken verifies the signature, issuer, and expiry of tokenString and
// returns the uid from its subject claim.
func parseToken(tokenString, signKey, issuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("validate token: %w", err)
	}

	uid, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("get subject from token: %w", err)
	}
	if uid == "" {
		return "", errors.New("empty subject")
	}

	return uid, nil
}

func parseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
