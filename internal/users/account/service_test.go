// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/users/account"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// memoryAccounts is an in-memory [account.AccountRepository].
type memoryAccounts struct {
	mu    sync.Mutex
	users map[int64]*auth.User
}

func newMemoryAccounts(t *testing.T, users ...*auth.User) *memoryAccounts {
	t.Helper()

	repository := &memoryAccounts{users: map[int64]*auth.User{}}
	for _, user := range users {
		repository.users[user.ID] = user
	}
	return repository
}

func (repository *memoryAccounts) FindByID(_ context.Context, id int64) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

func (repository *memoryAccounts) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (repository *memoryAccounts) UpdateRole(_ context.Context, id int64, role sec.Role) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Role = role
	return nil
}

func newUser(t *testing.T, id int64, password string) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return &auth.User{ID: id, Email: "user@taskly.dev", Nickname: "tester", Role: sec.RoleUser, PasswordHash: hash}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_GetUser returns the public projection or 404.
*/
func TestService_GetUser(t *testing.T) {
	service := account.NewService(newMemoryAccounts(t, newUser(t, 1, "Password1")), discardLogger())

	user, err := service.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &account.UserResponse{ID: 1, Email: "user@taskly.dev", Nickname: "tester"}, user)

	_, err = service.GetUser(context.Background(), 2)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_ChangePassword enforces the password rules in order.
*/
func TestService_ChangePassword(t *testing.T) {
	tests := []struct {
		name        string
		input       account.ChangePasswordInput
		wantMessage string
	}{
		{"success", account.ChangePasswordInput{OldPassword: "Password1", NewPassword: "Password2"}, ""},
		{"weak_new_password", account.ChangePasswordInput{OldPassword: "Password1", NewPassword: "password"}, "Validation failed"},
		{"too_short", account.ChangePasswordInput{OldPassword: "Password1", NewPassword: "Pass1"}, "Validation failed"},
		{"same_as_old", account.ChangePasswordInput{OldPassword: "Password1", NewPassword: "Password1"}, account.MsgSamePassword},
		{"wrong_old_password", account.ChangePasswordInput{OldPassword: "Password9", NewPassword: "Password2"}, account.MsgWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newMemoryAccounts(t, newUser(t, 1, "Password1"))
			service := account.NewService(repository, discardLogger())

			err := service.ChangePassword(context.Background(), 1, tt.input)
			if tt.wantMessage == "" {
				require.NoError(t, err)
				stored, _ := repository.FindByID(context.Background(), 1)
				assert.True(t, sec.CheckPasswordHash("Password2", stored.PasswordHash))
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
			assert.Equal(t, tt.wantMessage, appError.Message)
		})
	}
}

/*
TestService_ChangeRole parses the role and persists it.
*/
func TestService_ChangeRole(t *testing.T) {
	repository := newMemoryAccounts(t, newUser(t, 1, "Password1"))
	service := account.NewService(repository, discardLogger())
	ctx := context.Background()

	updated, err := service.ChangeRole(ctx, 1, "admin")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.UserRole)

	stored, _ := repository.FindByID(ctx, 1)
	assert.Equal(t, sec.RoleAdmin, stored.Role)

	_, err = service.ChangeRole(ctx, 1, "superuser")
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.ChangeRole(ctx, 99, "USER")
	assert.True(t, apperr.IsNotFound(err))
}
