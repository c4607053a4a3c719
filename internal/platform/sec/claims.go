// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// # Claims Extraction
//
// The extractors read typed values out of decoded claims. Every failure is a
// [*ClaimError] whose Reason is safe to return to the client.

// UserIDFromClaims parses the sub claim as a base-10 int64.
func UserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims[ClaimSubject]
	if !ok || raw == nil {
		return 0, unauthorized(ReasonMissingUserID)
	}

	subject, ok := raw.(string)
	if !ok {
		return 0, unauthorized(ReasonInvalidUserID)
	}

	if subject == "" {
		return 0, unauthorized(ReasonMissingUserID)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, unauthorized(ReasonInvalidUserID)
	}

	return userID, nil
}

// EmailFromClaims returns the email claim in its string form.
func EmailFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, ClaimEmail, ReasonMissingEmail)
}

// NicknameFromClaims returns the nickname claim in its string form.
func NicknameFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, ClaimNickname, ReasonMissingNickname)
}

// RoleFromClaims requires userRole to be a JSON string naming a known role.
func RoleFromClaims(claims jwt.MapClaims) (Role, error) {
	name, ok := claims[ClaimUserRole].(string)
	if !ok {
		return "", unauthorized(ReasonRoleNotString)
	}

	role, err := ParseRole(name)
	if err != nil {
		return "", unauthorized(ReasonInvalidRole)
	}

	return role, nil
}

// IdentityFromClaims runs every extractor in a fixed order
// (user id, role, email, nickname) and stops at the first failure.
func IdentityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	userID, err := UserIDFromClaims(claims)
	if err != nil {
		return nil, err
	}

	role, err := RoleFromClaims(claims)
	if err != nil {
		return nil, err
	}

	email, err := EmailFromClaims(claims)
	if err != nil {
		return nil, err
	}

	nickname, err := NicknameFromClaims(claims)
	if err != nil {
		return nil, err
	}

	return NewIdentity(userID, email, role, nickname), nil
}

// stringClaim returns a present, non-null claim rendered as a string.
func stringClaim(claims jwt.MapClaims, name, missingReason string) (string, error) {
	raw, ok := claims[name]
	if !ok || raw == nil {
		return "", unauthorized(missingReason)
	}

	if value, ok := raw.(string); ok {
		return value, nil
	}

	return fmt.Sprint(raw), nil
}
