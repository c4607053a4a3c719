// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/platform/sec"
)

/*
TestParseRole resolves role names case-insensitively.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    sec.Role
		wantErr bool
	}{
		{"ADMIN", sec.RoleAdmin, false},
		{"admin", sec.RoleAdmin, false},
		{"User", sec.RoleUser, false},
		{"MODERATOR", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, err := sec.ParseRole(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, sec.ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

/*
TestRequireRole treats roles as unordered.
*/
func TestRequireRole(t *testing.T) {
	assert.NoError(t, sec.RequireRole(sec.RoleAdmin, sec.RoleAdmin))
	assert.ErrorIs(t, sec.RequireRole(sec.RoleUser, sec.RoleAdmin), sec.ErrForbidden)
	assert.Equal(t, "ROLE_ADMIN", sec.RoleAdmin.Authority())
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("Secret123")
	require.NoError(t, err)

	assert.NoError(t, sec.VerifyPassword("Secret123", hash))
	assert.ErrorIs(t, sec.VerifyPassword("Secret124", hash), sec.ErrPasswordMismatch)
	assert.True(t, sec.CheckPasswordHash("Secret123", hash))
}
