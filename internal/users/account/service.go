// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/platform/validate"
)

// Service manages account profiles and credentials.
type Service struct {
	repo   AccountRepository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
GetUser retrieves the public profile of a user.

Returns:
  - *UserResponse: id, email and nickname
  - error: apperr.NotFound if the user does not exist
*/
func (service *Service) GetUser(context context.Context, userID int64) (*UserResponse, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{ID: user.ID, Email: user.Email, Nickname: user.Nickname}, nil
}

// ChangePasswordInput carries the caller's old and new passwords.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

/*
ChangePassword replaces the caller's password.

Description: The new password must have at least [MinPasswordLength]
characters with a digit and an uppercase letter, and must differ from the
current one. The old password must match.

Parameters:
  - context: context.Context
  - userID: int64 (the authenticated caller)
  - input: ChangePasswordInput

Returns:
  - error: Validation, wrong password, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, input ChangePasswordInput) error {
	// ── 1. Validation ─────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Password(FieldNewPassword, input.NewPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return err
	}

	// ── 2. Credential Checks ──────────────────────────────────────────────
	if sec.CheckPasswordHash(input.NewPassword, user.PasswordHash) {
		return apperr.BadRequest(MsgSamePassword)
	}

	if err := sec.VerifyPassword(input.OldPassword, user.PasswordHash); err != nil {
		if errors.Is(err, sec.ErrPasswordMismatch) {
			return apperr.BadRequest(MsgWrongPassword)
		}
		return fmt.Errorf("account_service_verify_failed: %w", err)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	hashedPassword, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.repo.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	service.logger.InfoContext(context, "user_password_changed", slog.Int64("user_id", userID))
	return nil
}

/*
ChangeRole assigns a new role to a user.

Returns:
  - *RoleResponse: The account with its new role
  - error: VALIDATION_ERROR for an unknown role, apperr.NotFound for an unknown user
*/
func (service *Service) ChangeRole(context context.Context, userID int64, roleName string) (*RoleResponse, error) {
	role, err := sec.ParseRole(roleName)
	if err != nil {
		return nil, validate.Field(FieldRole, "Must be one of: ADMIN, USER")
	}

	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateRole(context, userID, role); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_role_changed",
		slog.Int64("user_id", userID),
		slog.String("from", user.Role.String()),
		slog.String("to", role.String()),
	)

	return &RoleResponse{ID: user.ID, Email: user.Email, UserRole: role}, nil
}
