// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/taskly/internal/core/audit"
	"github.com/taibuivan/taskly/internal/core/todo"
	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/users/auth"
	"github.com/taibuivan/taskly/pkg/pointer"
)

// TodoFinder resolves the item being managed.
type TodoFinder interface {
	FindByID(context context.Context, id int64) (*todo.Todo, error)
}

// UserFinder resolves the user being registered.
type UserFinder interface {
	FindByID(context context.Context, id int64) (*auth.User, error)
}

// Service implements manager registration and removal.
type Service struct {
	repo     Repository
	todos    TodoFinder
	users    UserFinder
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a new manager [Service].
func NewService(repo Repository, todos TodoFinder, users UserFinder, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		todos:    todos,
		users:    users,
		recorder: recorder,
		logger:   logger,
	}
}

/*
Register makes managerUserID a manager of todoID.

Description: The attempt is audited with [audit.ActionManagerSave]. The audit
entry is written whether or not registration succeeds, and its outcome never
changes the value returned here.

Parameters:
  - ctx: context.Context
  - caller: *sec.Identity (must be the item's author)
  - todoID: int64
  - managerUserID: int64

Returns:
  - *Manager: The new manager
  - error: Todo not found, rule violations, or storage failures
*/
func (service *Service) Register(ctx context.Context, caller *sec.Identity, todoID, managerUserID int64) (*Manager, error) {
	template := audit.Entry{
		Action:       audit.ActionManagerSave,
		ActorID:      pointer.To(caller.UserID),
		TodoID:       pointer.To(todoID),
		TargetUserID: pointer.To(managerUserID),
	}

	return audit.Run(ctx, service.recorder, template, func(ctx context.Context) (*Manager, error) {
		return service.register(ctx, caller, todoID, managerUserID)
	})
}

func (service *Service) register(context context.Context, caller *sec.Identity, todoID, managerUserID int64) (*Manager, error) {
	// ── 1. Ownership ──────────────────────────────────────────────────────
	item, err := service.todos.FindByID(context, todoID)
	if err != nil {
		return nil, err
	}
	if item.User.ID != caller.UserID {
		return nil, apperr.BadRequest(MsgNotTodoAuthor)
	}

	// ── 2. Target User ────────────────────────────────────────────────────
	managerUser, err := service.users.FindByID(context, managerUserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.BadRequest(MsgManagerUserMissing)
		}
		return nil, fmt.Errorf("manager_service_user_lookup_failed: %w", err)
	}
	if managerUser.ID == item.User.ID {
		return nil, apperr.BadRequest(MsgSelfAssignment)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────
	manager := &Manager{
		TodoID: todoID,
		User:   auth.Summary{ID: managerUser.ID, Email: managerUser.Email, Nickname: managerUser.Nickname},
	}
	if err := service.repo.Create(context, manager); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "manager_registered",
		slog.Int64("todo_id", todoID),
		slog.Int64("manager_user_id", managerUserID),
	)

	return manager, nil
}

// List returns the managers of an existing item.
func (service *Service) List(context context.Context, todoID int64) ([]*Manager, error) {
	if _, err := service.todos.FindByID(context, todoID); err != nil {
		return nil, err
	}
	return service.repo.ListByTodo(context, todoID)
}

/*
Remove deletes a manager from an item.

Returns:
  - error: Todo not found, caller not the author, manager not on the item, or storage failures
*/
func (service *Service) Remove(context context.Context, caller *sec.Identity, todoID, managerID int64) error {
	item, err := service.todos.FindByID(context, todoID)
	if err != nil {
		return err
	}
	if item.User.ID != caller.UserID {
		return apperr.BadRequest(MsgNotAuthorOnDelete)
	}

	manager, err := service.repo.FindByID(context, managerID)
	if err != nil {
		return err
	}
	if manager.TodoID != todoID {
		return apperr.BadRequest(MsgNotManagerOfTodo)
	}

	if err := service.repo.Delete(context, managerID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "manager_removed",
		slog.Int64("todo_id", todoID),
		slog.Int64("manager_id", managerID),
	)
	return nil
}
