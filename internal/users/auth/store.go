// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # Repository Contracts

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	/*
		Create persists a new user and assigns its generated ID.

		Parameters:
		  - context: context.Context
		  - user: *User (ID, CreatedAt and UpdatedAt are filled in)

		Returns:
		  - error: apperr.BadRequest on a duplicate email, or database errors
	*/
	Create(context context.Context, user *User) error

	/*
		FindByEmail retrieves a user by email, compared case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: The stored account
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID retrieves a user by primary key.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: The stored account
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		ExistsByEmail reports whether an account already uses the email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: True if the email is taken
		  - error: Database errors
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)
}
