// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "errors"

// # Token Errors
//
// Every failure of [TokenService.Decode] wraps exactly one of these sentinels
// so callers can branch with errors.Is without inspecting library internals.

var (
	// ErrMissingToken means the Authorization header was absent or did not
	// carry the Bearer scheme.
	ErrMissingToken = errors.New("sec: bearer token not found")

	// ErrTokenExpired means the signature was valid but exp is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrBadSignature covers signature mismatches and structurally broken tokens.
	ErrBadSignature = errors.New("sec: invalid token signature")

	// ErrUnsupportedToken means the token declared an algorithm other than HS256.
	ErrUnsupportedToken = errors.New("sec: unsupported token")

	// ErrMalformedToken covers empty input and claims that fail validation.
	ErrMalformedToken = errors.New("sec: malformed token")

	// ErrTokenInternal is anything the classifier did not recognise.
	ErrTokenInternal = errors.New("sec: token processing failed")
)

// # Authorization Errors

var (
	// ErrUnauthorized is matched by every [ClaimError].
	ErrUnauthorized = errors.New("sec: unauthorized")

	// ErrForbidden is returned by [RequireRole] when the role is insufficient.
	ErrForbidden = errors.New("sec: forbidden")

	// ErrInvalidRole is returned by [ParseRole] for unknown role names.
	ErrInvalidRole = errors.New("sec: invalid role")
)

// Claim extraction failure reasons. These strings are sent to clients verbatim.
const (
	ReasonMissingUserID   = "missing user id"
	ReasonInvalidUserID   = "invalid user id format"
	ReasonMissingEmail    = "missing email"
	ReasonMissingNickname = "missing nickname"
	ReasonRoleNotString   = "role not a string"
	ReasonInvalidRole     = "invalid role"
)

// ClaimError reports a claim that was missing or had the wrong shape.
type ClaimError struct {
	Reason string
}

func (claimError *ClaimError) Error() string {
	return "sec: " + claimError.Reason
}

// Is makes every ClaimError match [ErrUnauthorized].
func (claimError *ClaimError) Is(target error) bool {
	return target == ErrUnauthorized
}

func unauthorized(reason string) error {
	return &ClaimError{Reason: reason}
}
