// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by [VerifyPassword] when the password is wrong.
var ErrPasswordMismatch = errors.New("sec: password does not match")

// HashPassword hashes a plain-text password using bcrypt.
//
// bcrypt only reads the first 72 bytes, so longer passwords are rejected
// instead of being silently truncated.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain-text password with a stored bcrypt hash.
func VerifyPassword(plainTextPassword, existingHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("sec: failed to verify password: %w", err)
	}
}

// CheckPasswordHash is the boolean form of [VerifyPassword].
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return VerifyPassword(plainTextPassword, existingHash) == nil
}
