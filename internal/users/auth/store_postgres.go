// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/database/schema"
	"github.com/taibuivan/taskly/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectUser is the shared projection for single-user lookups.
var selectUser = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, %s, %s
	FROM %s`,
	schema.UserAccount.ID,
	schema.UserAccount.Email,
	schema.UserAccount.Password,
	schema.UserAccount.Nickname,
	schema.UserAccount.Role,
	schema.UserAccount.CreatedAt,
	schema.UserAccount.UpdatedAt,
	schema.UserAccount.Table,
)

/*
Create persists a new user record into the users.account table.

Returns:
  - error: apperr.BadRequest on a duplicate email, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Email,
		schema.UserAccount.Password,
		schema.UserAccount.Nickname,
		schema.UserAccount.Role,
		schema.UserAccount.ID,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Email,
		user.PasswordHash,
		user.Nickname,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if dberr.IsUniqueViolation(err) {
		return apperr.BadRequest(MsgDuplicateEmail).WithCause(err)
	}
	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user record by email, ignoring case.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := selectUser + fmt.Sprintf(` WHERE lower(%s) = $1`, schema.UserAccount.Email)
	return repository.scanOne(context, query, strings.ToLower(email))
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := selectUser + fmt.Sprintf(` WHERE %s = $1`, schema.UserAccount.ID)
	return repository.scanOne(context, query, id)
}

// ExistsByEmail reports whether an account already uses the email.
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE lower(%s) = $1)`,
		schema.UserAccount.Table,
		schema.UserAccount.Email,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, strings.ToLower(email)).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return exists, nil
}

func (repository *PostgresUserRepository) scanOne(context context.Context, query string, argument any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, argument).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Nickname,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}
