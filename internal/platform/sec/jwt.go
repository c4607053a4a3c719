// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and bearer token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing and
// verification, claim extraction) from the domain logic. The HTTP gate consumes
// it through the small [middleware.TokenDecoder] interface, and the sign-up and
// sign-in flows consume it through [TokenService.Issue].
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// BearerPrefix is the scheme prefix expected on the Authorization header
	// and prepended to every issued token.
	BearerPrefix = "Bearer "

	// DefaultTokenTTL is the access token lifetime when none is configured.
	DefaultTokenTTL = 60 * time.Minute
)

// Claim names carried by every access token besides sub, iat and exp.
const (
	ClaimSubject  = "sub"
	ClaimEmail    = "email"
	ClaimUserRole = "userRole"
	ClaimNickname = "nickname"
)

// AuthClaims is the payload of an access token. It carries the whole
// identity, so the gate never queries the database.
//
// AuthClaims is only used for issuing. Decoding goes through [jwt.MapClaims]
// so the claims extractor can check the JSON type of each value.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email    string `json:"email"`
	UserRole string `json:"userRole"`
	Nickname string `json:"nickname"`
}

// Option customises a [TokenService].
type Option func(*TokenService)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		if now != nil {
			service.now = now
		}
	}
}

// TokenService issues and decodes HS256 access tokens.
//
// It is immutable after construction and safe for concurrent use.
type TokenService struct {
	key *SigningKey
	ttl time.Duration
	now func() time.Time
}

// NewTokenService creates a new TokenService.
// A non-positive ttl falls back to [DefaultTokenTTL].
func NewTokenService(key *SigningKey, ttl time.Duration, options ...Option) (*TokenService, error) {
	if key == nil {
		return nil, errors.New("sec: signing key is required")
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	service := &TokenService{
		key: key,
		ttl: ttl,
		now: time.Now,
	}

	for _, option := range options {
		option(service)
	}

	return service, nil
}

// TTL returns the configured access token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// # Issuing

// Issue signs a token for the given identity and returns it with the
// [BearerPrefix] already attached.
func (service *TokenService) Issue(userID int64, email string, role Role, nickname string) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("sec: cannot issue token: %w", ErrInvalidRole)
	}

	issuedAt := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.ttl)),
		},
		Email:    email,
		UserRole: string(role),
		Nickname: nickname,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.key.bytes())
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return BearerPrefix + signedToken, nil
}

// # Decoding

// StripScheme removes the Bearer prefix from an Authorization header value.
func (service *TokenService) StripScheme(header string) (string, error) {
	return StripScheme(header)
}

// StripScheme removes the [BearerPrefix] from header.
//
// Blank input or a value without the exact prefix yields [ErrMissingToken].
// The prefix is case-sensitive and must be followed by a single space.
func StripScheme(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrMissingToken
	}

	raw, found := strings.CutPrefix(header, BearerPrefix)
	if !found {
		return "", ErrMissingToken
	}

	return raw, nil
}

// Decode verifies the signature and expiry of a raw token and returns its claims.
//
// Errors always wrap one of [ErrMalformedToken], [ErrBadSignature],
// [ErrUnsupportedToken], [ErrTokenExpired] or [ErrTokenInternal].
func (service *TokenService) Decode(raw string) (jwt.MapClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: token is empty", ErrMalformedToken)
	}

	parser := jwt.NewParser(jwt.WithTimeFunc(service.now))

	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(raw, claims, service.keyFunc); err != nil {
		return nil, classify(err)
	}

	return claims, nil
}

var errUnexpectedAlgorithm = errors.New("sec: unexpected signing method")

func (service *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("%w: %v", errUnexpectedAlgorithm, token.Header["alg"])
	}
	return service.key.bytes(), nil
}

// classify maps parser failures onto the package sentinels.
// Expiry is checked first because jwt reports it alongside ErrTokenInvalidClaims.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)

	case errors.Is(err, errUnexpectedAlgorithm), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrUnsupportedToken, err)

	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrBadSignature, err)

	case errors.Is(err, jwt.ErrTokenInvalidClaims), errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)

	default:
		return fmt.Errorf("%w: %w", ErrTokenInternal, err)
	}
}
