// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/taskly/internal/platform/database/schema"
	"github.com/taibuivan/taskly/internal/platform/dberr"
	"github.com/taibuivan/taskly/internal/platform/postgres"
	"github.com/taibuivan/taskly/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// resourceName is used in NotFound messages ("Todo not found").
const resourceName = "Todo"

// selectTodo projects a to-do item joined with its author.
var selectTodo = fmt.Sprintf(`
	SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, u.%s, u.%s, u.%s
	FROM %s t
	JOIN %s u ON u.%s = t.%s`,
	schema.CoreTodo.ID,
	schema.CoreTodo.Title,
	schema.CoreTodo.Contents,
	schema.CoreTodo.Weather,
	schema.CoreTodo.CreatedAt,
	schema.CoreTodo.UpdatedAt,
	schema.UserAccount.ID,
	schema.UserAccount.Email,
	schema.UserAccount.Nickname,
	schema.CoreTodo.Table,
	schema.UserAccount.Table,
	schema.UserAccount.ID,
	schema.CoreTodo.AuthorID,
)

/*
Create inserts the item and its author's manager row in one transaction.

Parameters:
  - context: context.Context
  - todo: *Todo (User.ID must reference an existing account)

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) Create(context context.Context, todo *Todo) error {
	insertTodo := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.CoreTodo.Table,
		schema.CoreTodo.AuthorID,
		schema.CoreTodo.Title,
		schema.CoreTodo.Contents,
		schema.CoreTodo.Weather,
		schema.CoreTodo.ID,
		schema.CoreTodo.CreatedAt,
		schema.CoreTodo.UpdatedAt,
	)

	insertManager := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CoreManager.Table,
		schema.CoreManager.TodoID,
		schema.CoreManager.UserID,
	)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, insertTodo,
			todo.User.ID,
			todo.Title,
			todo.Contents,
			todo.Weather,
		).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(context, insertManager, todo.ID, todo.User.ID)
		return err
	})
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}

	return nil
}

// FindByID retrieves one item with its author.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Todo, error) {
	query := selectTodo + fmt.Sprintf(` WHERE t.%s = $1`, schema.CoreTodo.ID)

	todo, err := scanTodo(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return todo, nil
}

/*
List returns one page of items ordered by modification time, newest first.

Description: Weather is matched exactly. The modification range is inclusive
on both ends.
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Todo, int, error) {
	where := newConditions()
	if filter.Weather != "" {
		where.add(fmt.Sprintf("t.%s = $%%d", schema.CoreTodo.Weather), filter.Weather)
	}
	if filter.ModifiedFrom != nil {
		where.add(fmt.Sprintf("t.%s >= $%%d", schema.CoreTodo.UpdatedAt), *filter.ModifiedFrom)
	}
	if filter.ModifiedTo != nil {
		where.add(fmt.Sprintf("t.%s <= $%%d", schema.CoreTodo.UpdatedAt), *filter.ModifiedTo)
	}

	total, err := count(context, repository.db, where)
	if err != nil {
		return nil, 0, err
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectTodo)
	queryBuilder.WriteString(where.sql())
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.%s DESC, t.%s DESC", schema.CoreTodo.UpdatedAt, schema.CoreTodo.ID))
	queryBuilder.WriteString(where.page(params))

	rows, err := repository.db.Query(context, queryBuilder.String(), where.args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	todos := []*Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	return todos, total, nil
}

/*
Search returns one page of search rows ordered by creation time, newest first.

Description: Title and nickname are case-sensitive substring matches; the
nickname is the author's. Manager and comment counts are distinct counts.
*/
func (repository *PostgresRepository) Search(context context.Context, filter SearchFilter, params pagination.Params) ([]SearchResult, int, error) {
	where := newConditions()
	if filter.Title != "" {
		where.add(fmt.Sprintf("strpos(t.%s, $%%d) > 0", schema.CoreTodo.Title), filter.Title)
	}
	if filter.Nickname != "" {
		where.add(fmt.Sprintf("strpos(u.%s, $%%d) > 0", schema.UserAccount.Nickname), filter.Nickname)
	}
	if filter.CreatedFrom != nil {
		where.add(fmt.Sprintf("t.%s >= $%%d", schema.CoreTodo.CreatedAt), *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		where.add(fmt.Sprintf("t.%s <= $%%d", schema.CoreTodo.CreatedAt), *filter.CreatedTo)
	}

	total, err := count(context, repository.db, where)
	if err != nil {
		return nil, 0, err
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT t.%s, t.%s, COUNT(DISTINCT m.%s), COUNT(DISTINCT c.%s)
		FROM %s t
		JOIN %s u ON u.%s = t.%s
		LEFT JOIN %s m ON m.%s = t.%s
		LEFT JOIN %s c ON c.%s = t.%s`,
		schema.CoreTodo.ID,
		schema.CoreTodo.Title,
		schema.CoreManager.ID,
		schema.CoreComment.ID,
		schema.CoreTodo.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreTodo.AuthorID,
		schema.CoreManager.Table, schema.CoreManager.TodoID, schema.CoreTodo.ID,
		schema.CoreComment.Table, schema.CoreComment.TodoID, schema.CoreTodo.ID,
	))
	queryBuilder.WriteString(where.sql())
	queryBuilder.WriteString(fmt.Sprintf(" GROUP BY t.%s ORDER BY t.%s DESC, t.%s DESC",
		schema.CoreTodo.ID, schema.CoreTodo.CreatedAt, schema.CoreTodo.ID))
	queryBuilder.WriteString(where.page(params))

	rows, err := repository.db.Query(context, queryBuilder.String(), where.args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var result SearchResult
		if err := rows.Scan(&result.ID, &result.Title, &result.ManagerCount, &result.CommentCount); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	return results, total, nil
}

// # Query Helpers

// conditions accumulates AND-ed predicates with positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

func newConditions() *conditions {
	return &conditions{}
}

// add appends a predicate whose single %d verb receives the argument position.
func (where *conditions) add(predicate string, argument any) {
	where.args = append(where.args, argument)
	where.clauses = append(where.clauses, fmt.Sprintf(predicate, len(where.args)))
}

func (where *conditions) sql() string {
	if len(where.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where.clauses, " AND ")
}

// page appends LIMIT and OFFSET arguments and returns their SQL.
func (where *conditions) page(params pagination.Params) string {
	where.args = append(where.args, params.Limit(), params.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(where.args)-1, len(where.args))
}

// count runs the filtered count. It must be called before [conditions.page].
func count(context context.Context, querier postgres.Querier, where *conditions) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s t JOIN %s u ON u.%s = t.%s`,
		schema.CoreTodo.Table,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.CoreTodo.AuthorID,
	) + where.sql()

	var total int
	if err := querier.QueryRow(context, query, where.args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, resourceName)
	}
	return total, nil
}

func scanTodo(row pgx.Row) (*Todo, error) {
	todo := &Todo{}
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Contents,
		&todo.Weather,
		&todo.CreatedAt,
		&todo.UpdatedAt,
		&todo.User.ID,
		&todo.User.Email,
		&todo.User.Nickname,
	)
	return todo, err
}
