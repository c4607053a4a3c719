// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/database/schema"
	"github.com/taibuivan/taskly/internal/platform/dberr"
	"github.com/taibuivan/taskly/internal/users/auth"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s;
	`,
		schema.CoreComment.Table,
		schema.CoreComment.TodoID,
		schema.CoreComment.AuthorID,
		schema.CoreComment.Contents,
		schema.CoreComment.ID,
		schema.CoreComment.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, comment.TodoID, comment.User.ID, comment.Contents).
		Scan(&comment.ID, &comment.CreatedAt)
	if dberr.IsForeignKeyViolation(err) {
		return apperr.BadRequest(auth.MsgUserNotFound).WithCause(err)
	}
	return dberr.Wrap(err, "Comment")
}

func (repository *PostgresRepository) ListByTodo(context context.Context, todoID int64) ([]*Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, u.%s, u.%s, u.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC, c.%s ASC;
	`,
		schema.CoreComment.ID,
		schema.CoreComment.TodoID,
		schema.CoreComment.Contents,
		schema.CoreComment.CreatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.Email,
		schema.UserAccount.Nickname,
		schema.CoreComment.Table,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.CoreComment.AuthorID,
		schema.CoreComment.TodoID,
		schema.CoreComment.CreatedAt,
		schema.CoreComment.ID,
	)

	rows, err := repository.db.Query(context, query, todoID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.TodoID, &c.Contents, &c.CreatedAt, &c.User.ID, &c.User.Email, &c.User.Nickname); err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, dberr.Wrap(rows.Err(), "list_comments")
}
