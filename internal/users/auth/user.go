// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration and credential sign-in.

It owns the [User] entity shared by the rest of the application and issues
the bearer tokens that the request gate later verifies.

# Architecture

  - Entity: [User] (this file).
  - Storage: [UserRepository] implemented by [PostgresUserRepository].
  - Service: [Service] orchestrates hashing, persistence and token issuing.
  - Transport: [Handler] exposes the public /auth endpoints.
*/
package auth

import (
	"time"

	"github.com/taibuivan/taskly/internal/platform/sec"
)

// # Domain Entities

// User represents a registered Taskly member.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Nickname     string    `json:"nickname"`
	Role         sec.Role  `json:"userRole"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the public projection of a [User] embedded in other resources.
type Summary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname,omitempty"`
}

// Summary projects the user into its public form.
func (user *User) Summary() Summary {
	return Summary{ID: user.ID, Email: user.Email, Nickname: user.Nickname}
}

// # Field Identifiers

// Field names used in payloads and validation errors.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldNickname = "nickname"
	FieldUserRole = "userRole"
)

// # Messages

// Client-facing messages for the authentication domain.
const (
	MsgDuplicateEmail     = "이미 존재하는 이메일입니다."
	MsgInvalidCredentials = "잘못된 이메일 또는 비밀번호입니다."
	MsgInvalidRole        = "유효하지 않은 UserRole"
	MsgUserNotFound       = "존재하지 않는 유저입니다."
)

// MaxNicknameLength bounds stored nicknames.
const MaxNicknameLength = 50
