// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/taskly/internal/core/todo"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/platform/validate"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// TodoFinder resolves the item a comment belongs to.
type TodoFinder interface {
	FindByID(context context.Context, id int64) (*todo.Todo, error)
}

type Service struct {
	repo   Repository
	todos  TodoFinder
	logger *slog.Logger
}

func NewService(repo Repository, todos TodoFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		todos:  todos,
		logger: logger,
	}
}

// Create adds a comment by the caller to an existing item.
func (service *Service) Create(context context.Context, author *sec.Identity, todoID int64, contents string) (*Comment, error) {
	contents = strings.TrimSpace(contents)

	validator := &validate.Validator{}
	validator.Required(FieldContents, contents).
		MaxLen(FieldContents, contents, MaxContentsLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.todos.FindByID(context, todoID); err != nil {
		return nil, err
	}

	comment := &Comment{
		TodoID:   todoID,
		Contents: contents,
		User:     auth.Summary{ID: author.UserID, Email: author.Email, Nickname: author.Nickname},
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// List returns the comments on an existing item.
func (service *Service) List(context context.Context, todoID int64) ([]*Comment, error) {
	if _, err := service.todos.FindByID(context, todoID); err != nil {
		return nil, err
	}
	return service.repo.ListByTodo(context, todoID)
}
