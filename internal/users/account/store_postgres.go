// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskly/internal/platform/database/schema"
	"github.com/taibuivan/taskly/internal/platform/dberr"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
//
// Lookups are delegated to [auth.PostgresUserRepository].
type PostgresAccountRepository struct {
	*auth.PostgresUserRepository
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		PostgresUserRepository: auth.NewUserRepository(pool),
		pool:                   pool,
	}
}

// UpdatePassword replaces the stored password hash and bumps updatedat.
func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, id int64, passwordHash string) error {
	return repository.updateColumn(context, id, schema.UserAccount.Password, passwordHash)
}

// UpdateRole replaces the stored role and bumps updatedat.
func (repository *PostgresAccountRepository) UpdateRole(context context.Context, id int64, role sec.Role) error {
	return repository.updateColumn(context, id, schema.UserAccount.Role, role)
}

func (repository *PostgresAccountRepository) updateColumn(context context.Context, id int64, column string, value any) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		column,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, value)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	return nil
}
