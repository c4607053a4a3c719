// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/platform/validate"
	"github.com/taibuivan/taskly/pkg/textnorm"
)

// TokenIssuer mints the bearer token returned by signup and signin.
// [*sec.TokenService] satisfies it.
type TokenIssuer interface {
	Issue(userID int64, email string, role sec.Role, nickname string) (string, error)
}

// Service orchestrates account registration and sign-in.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepository UserRepository, tokenIssuer TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepository,
		tokenIssuer:    tokenIssuer,
		logger:         logger,
	}
}

// # Registration Flow

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Email    string
	Password string
	Nickname string
	UserRole string
}

/*
Signup creates a new account and returns a bearer token for it.

Description: Validates the payload, rejects duplicate emails, hashes the
password with bcrypt and persists the account before issuing a token.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - string: "Bearer <jwt>"
  - err: Validation, duplicate email, or internal failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (string, error) {
	nickname := textnorm.Clean(input.Nickname)
	email := strings.TrimSpace(input.Email)

	// ── 1. Validation ─────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		Required(FieldNickname, nickname).
		MaxLen(FieldNickname, nickname, MaxNicknameLength).
		Required(FieldUserRole, input.UserRole)
	if err := validator.Err(); err != nil {
		return "", err
	}

	role, err := sec.ParseRole(input.UserRole)
	if err != nil {
		return "", apperr.BadRequest(MsgInvalidRole).WithCause(err)
	}

	// ── 2. Uniqueness ─────────────────────────────────────────────────────
	exists, err := service.userRepository.ExistsByEmail(context, email)
	if err != nil {
		return "", fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}
	if exists {
		return "", apperr.BadRequest(MsgDuplicateEmail)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("auth_service_signup_hash_failed: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Nickname:     nickname,
		Role:         role,
	}

	// The unique index still guards against a concurrent signup.
	if err := service.userRepository.Create(context, user); err != nil {
		return "", err
	}

	service.logger.InfoContext(context, "user_signed_up",
		slog.Int64("user_id", user.ID),
		slog.String("role", user.Role.String()),
	)

	return service.issue(user)
}

// # Authentication Flow

// SigninInput defines credentials for an authentication attempt.
type SigninInput struct {
	Email    string
	Password string
}

/*
Signin validates credentials and returns a bearer token.

Description: Unknown emails and wrong passwords produce the same 401 so the
response does not reveal which accounts exist.

Parameters:
  - context: context.Context
  - input: SigninInput

Returns:
  - string: "Bearer <jwt>"
  - err: Unauthorized or internal failures
*/
func (service *Service) Signin(context context.Context, input SigninInput) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(input.Email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.Unauthorized(MsgInvalidCredentials)
		}
		return "", fmt.Errorf("auth_service_signin_lookup_failed: %w", err)
	}

	if err := sec.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		if errors.Is(err, sec.ErrPasswordMismatch) {
			return "", apperr.Unauthorized(MsgInvalidCredentials)
		}
		return "", fmt.Errorf("auth_service_signin_verify_failed: %w", err)
	}

	return service.issue(user)
}

func (service *Service) issue(user *User) (string, error) {
	token, err := service.tokenIssuer.Issue(user.ID, user.Email, user.Role, user.Nickname)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	return token, nil
}
