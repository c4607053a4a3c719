// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// Identity is the authenticated caller attached to a request context.
//
// It is created once per request by the gate and must be treated as read-only
// by handlers.
type Identity struct {
	UserID      int64
	Email       string
	Role        Role
	Nickname    string
	Authorities []string
}

// NewIdentity builds an Identity whose only authority is derived from role.
func NewIdentity(userID int64, email string, role Role, nickname string) *Identity {
	return &Identity{
		UserID:      userID,
		Email:       email,
		Role:        role,
		Nickname:    nickname,
		Authorities: []string{role.Authority()},
	}
}

// HasAuthority reports whether the identity was granted authority.
func (identity *Identity) HasAuthority(authority string) bool {
	return slices.Contains(identity.Authorities, authority)
}

// IsAdmin reports whether the identity carries the admin role.
func (identity *Identity) IsAdmin() bool {
	return identity.Role == RoleAdmin
}
