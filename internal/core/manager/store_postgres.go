// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manager

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/database/schema"
	"github.com/taibuivan/taskly/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectManager = fmt.Sprintf(`
	SELECT m.%s, m.%s, m.%s, u.%s, u.%s, u.%s
	FROM %s m
	JOIN %s u ON u.%s = m.%s`,
	schema.CoreManager.ID,
	schema.CoreManager.TodoID,
	schema.CoreManager.CreatedAt,
	schema.UserAccount.ID,
	schema.UserAccount.Email,
	schema.UserAccount.Nickname,
	schema.CoreManager.Table,
	schema.UserAccount.Table,
	schema.UserAccount.ID,
	schema.CoreManager.UserID,
)

// Create inserts a manager row. The (todo, user) pair is unique.
func (repository *PostgresRepository) Create(context context.Context, manager *Manager) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s`,
		schema.CoreManager.Table,
		schema.CoreManager.TodoID,
		schema.CoreManager.UserID,
		schema.CoreManager.ID,
		schema.CoreManager.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, manager.TodoID, manager.User.ID).
		Scan(&manager.ID, &manager.CreatedAt)

	switch {
	case dberr.IsUniqueViolation(err):
		return apperr.BadRequest(MsgAlreadyManager).WithCause(err)
	case dberr.IsForeignKeyViolation(err):
		return apperr.BadRequest(MsgManagerUserMissing).WithCause(err)
	}
	return dberr.Wrap(err, "Manager")
}

// FindByID retrieves one manager with its user.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Manager, error) {
	query := selectManager + fmt.Sprintf(` WHERE m.%s = $1`, schema.CoreManager.ID)

	manager, err := scanManager(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Manager")
	}
	return manager, nil
}

// ListByTodo returns the managers of one item in registration order.
func (repository *PostgresRepository) ListByTodo(context context.Context, todoID int64) ([]*Manager, error) {
	query := selectManager + fmt.Sprintf(` WHERE m.%s = $1 ORDER BY m.%s ASC`,
		schema.CoreManager.TodoID,
		schema.CoreManager.ID,
	)

	rows, err := repository.db.Query(context, query, todoID)
	if err != nil {
		return nil, dberr.Wrap(err, "Manager")
	}
	defer rows.Close()

	managers := []*Manager{}
	for rows.Next() {
		manager, err := scanManager(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Manager")
		}
		managers = append(managers, manager)
	}

	return managers, dberr.Wrap(rows.Err(), "Manager")
}

// Delete removes one manager row.
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreManager.Table, schema.CoreManager.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Manager")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Manager")
	}
	return nil
}

func scanManager(row pgx.Row) (*Manager, error) {
	manager := &Manager{}
	err := row.Scan(
		&manager.ID,
		&manager.TodoID,
		&manager.CreatedAt,
		&manager.User.ID,
		&manager.User.Email,
		&manager.User.Nickname,
	)
	return manager, err
}
