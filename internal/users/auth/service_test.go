// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[int64]*auth.User{}}
}

func (repository *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.BadRequest(auth.MsgDuplicateEmail)
		}
	}

	repository.nextID++
	user.ID = repository.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	repository.users[user.ID] = &stored
	return nil
}

func (repository *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.users {
		if strings.EqualFold(user.Email, email) {
			found := *user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

func (repository *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := repository.FindByEmail(ctx, email)
	return err == nil, nil
}

// stubIssuer returns a predictable token per user.
type stubIssuer struct{ err error }

func (issuer stubIssuer) Issue(userID int64, _ string, _ sec.Role, _ string) (string, error) {
	if issuer.err != nil {
		return "", issuer.err
	}
	return fmt.Sprintf("Bearer token-%d", userID), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validSignup() auth.SignupInput {
	return auth.SignupInput{
		Email:    "user@taskly.dev",
		Password: "Password1",
		Nickname: "tester",
		UserRole: "user",
	}
}

/*
TestService_Signup covers validation, uniqueness and token issuing.
*/
func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		users := newMemoryUsers()
		service := auth.NewService(users, stubIssuer{}, discardLogger())

		token, err := service.Signup(ctx, validSignup())
		require.NoError(t, err)
		assert.Equal(t, "Bearer token-1", token)

		stored, err := users.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, stored.Role)
		assert.NotEqual(t, "Password1", stored.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("Password1", stored.PasswordHash))
	})

	t.Run("duplicate_email", func(t *testing.T) {
		service := auth.NewService(newMemoryUsers(), stubIssuer{}, discardLogger())
		_, err := service.Signup(ctx, validSignup())
		require.NoError(t, err)

		duplicate := validSignup()
		duplicate.Email = "USER@taskly.dev"
		_, err = service.Signup(ctx, duplicate)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 400, appError.HTTPStatus)
		assert.Equal(t, auth.MsgDuplicateEmail, appError.Message)
	})

	t.Run("invalid_role", func(t *testing.T) {
		service := auth.NewService(newMemoryUsers(), stubIssuer{}, discardLogger())
		input := validSignup()
		input.UserRole = "ROOT"

		_, err := service.Signup(ctx, input)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, auth.MsgInvalidRole, appError.Message)
	})

	t.Run("missing_fields", func(t *testing.T) {
		service := auth.NewService(newMemoryUsers(), stubIssuer{}, discardLogger())

		_, err := service.Signup(ctx, auth.SignupInput{Email: "not-an-email"})
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		assert.NotEmpty(t, appError.Details)
	})

	t.Run("nickname_normalized", func(t *testing.T) {
		users := newMemoryUsers()
		service := auth.NewService(users, stubIssuer{}, discardLogger())
		input := validSignup()
		input.Nickname = "  lazy   tester "

		_, err := service.Signup(ctx, input)
		require.NoError(t, err)

		stored, err := users.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "lazy tester", stored.Nickname)
	})

	t.Run("issuer_failure", func(t *testing.T) {
		service := auth.NewService(newMemoryUsers(), stubIssuer{err: assert.AnError}, discardLogger())
		_, err := service.Signup(ctx, validSignup())
		assert.ErrorIs(t, err, assert.AnError)
	})
}

/*
TestService_Signin rejects unknown emails and wrong passwords alike.
*/
func TestService_Signin(t *testing.T) {
	ctx := context.Background()
	service := auth.NewService(newMemoryUsers(), stubIssuer{}, discardLogger())
	_, err := service.Signup(ctx, validSignup())
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      auth.SigninInput
		wantStatus int
	}{
		{"success", auth.SigninInput{Email: "user@taskly.dev", Password: "Password1"}, 0},
		{"email_case_insensitive", auth.SigninInput{Email: "User@Taskly.dev", Password: "Password1"}, 0},
		{"wrong_password", auth.SigninInput{Email: "user@taskly.dev", Password: "Password2"}, 401},
		{"unknown_email", auth.SigninInput{Email: "ghost@taskly.dev", Password: "Password1"}, 401},
		{"missing_password", auth.SigninInput{Email: "user@taskly.dev"}, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.Signin(ctx, tt.input)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Bearer token-1", token)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
		})
	}
}

/*
TestService_Signin_TokenDecodes issues a real token and decodes its identity.
*/
func TestService_Signin_TokenDecodes(t *testing.T) {
	ctx := context.Background()

	key, err := sec.NewSigningKey(base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")))
	require.NoError(t, err)
	tokens, err := sec.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	service := auth.NewService(newMemoryUsers(), tokens, discardLogger())
	input := validSignup()
	input.UserRole = "ADMIN"
	_, err = service.Signup(ctx, input)
	require.NoError(t, err)

	bearer, err := service.Signin(ctx, auth.SigninInput{Email: input.Email, Password: input.Password})
	require.NoError(t, err)

	raw, err := tokens.StripScheme(bearer)
	require.NoError(t, err)
	claims, err := tokens.Decode(raw)
	require.NoError(t, err)

	identity, err := sec.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.UserID)
	assert.Equal(t, sec.RoleAdmin, identity.Role)
	assert.Equal(t, "tester", identity.Nickname)
}
