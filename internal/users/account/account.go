// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles profile lookup, password changes and role management.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Password changes act on the caller's own identity. Role changes
    are mounted under /admin and rely on the gate's role check alone.
*/
package account

import (
	"context"

	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// # Domain Entities

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// RoleResponse is returned after a role change.
type RoleResponse struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	UserRole sec.Role `json:"userRole"`
}

// Field names used in payloads and validation errors.
const (
	FieldOldPassword = "oldPassword"
	FieldNewPassword = "newPassword"
	FieldRole        = "role"
)

// MinPasswordLength is the minimum length of a new password.
const MinPasswordLength = 8

// Client-facing messages for the account domain.
const (
	MsgWrongPassword = "잘못된 비밀번호입니다."
	MsgSamePassword  = "새 비밀번호는 기존 비밀번호와 같을 수 없습니다."
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *auth.User: The account
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	/*
		UpdatePassword replaces the stored password hash.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - passwordHash: string (bcrypt)

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	UpdatePassword(context context.Context, id int64, passwordHash string) error

	/*
		UpdateRole replaces the stored role.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - role: sec.Role

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	UpdateRole(context context.Context, id int64, role sec.Role) error
}
