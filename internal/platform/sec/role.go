// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"strings"
)

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Full access, including every path under the admin prefixes
	RoleAdmin Role = "ADMIN"

	// Default role for registered users
	RoleUser Role = "USER"
)

// AuthorityPrefix is prepended to a role name to build its granted authority.
const AuthorityPrefix = "ROLE_"

var knownRoles = []Role{RoleAdmin, RoleUser}

// ParseRole resolves a role name case-insensitively.
func ParseRole(name string) (Role, error) {
	for _, role := range knownRoles {
		if strings.EqualFold(string(role), name) {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, name)
}

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	for _, role := range knownRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Authority returns the role with the authority prefix, e.g. ROLE_ADMIN.
func (r Role) Authority() string {
	return AuthorityPrefix + string(r)
}

func (r Role) String() string {
	return string(r)
}

// # Role Checks

// RequireRole returns [ErrForbidden] unless actual equals required.
//
// Roles are not ordered: an ADMIN check is satisfied by ADMIN only.
func RequireRole(actual, required Role) error {
	if actual != required {
		return fmt.Errorf("%w: role %s is required, got %s", ErrForbidden, required, actual)
	}
	return nil
}
