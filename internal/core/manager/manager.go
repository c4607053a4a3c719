// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manager assigns users as managers of to-do items.

# Rules

  - Only the author of an item may add or remove its managers.
  - The author is registered automatically and cannot register themself again.
  - Every registration attempt leaves exactly one audit entry, success or failure.
*/
package manager

import (
	"context"
	"time"

	"github.com/taibuivan/taskly/internal/users/auth"
)

// Manager links a user to a to-do item.
type Manager struct {
	ID        int64        `json:"id"`
	TodoID    int64        `json:"todoId"`
	User      auth.Summary `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// FieldManagerUserID names the user to register in payloads.
const FieldManagerUserID = "managerUserId"

// Client-facing messages.
const (
	MsgNotTodoAuthor      = "담당자를 등록하려고 하는 유저가 일정을 만든 유저가 유효하지 않습니다."
	MsgManagerUserMissing = "등록하려고 하는 담당자 유저가 존재하지 않습니다."
	MsgSelfAssignment     = "일정 작성자는 본인을 담당자로 등록할 수 없습니다."
	MsgAlreadyManager     = "이미 등록된 담당자입니다."
	MsgNotAuthorOnDelete  = "해당 일정을 만든 유저가 유효하지 않습니다."
	MsgNotManagerOfTodo   = "해당 일정에 등록된 담당자가 아닙니다."
)

// Repository defines the data access contract for managers.
type Repository interface {
	/*
		Create persists a manager and fills in its ID and CreatedAt.

		Returns:
		  - error: apperr.BadRequest if the user already manages the item, or database errors
	*/
	Create(context context.Context, manager *Manager) error

	/*
		FindByID retrieves one manager.

		Returns:
		  - *Manager: The manager with its user
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*Manager, error)

	// ListByTodo returns the managers of one item in registration order.
	ListByTodo(context context.Context, todoID int64) ([]*Manager, error)

	// Delete removes one manager.
	Delete(context context.Context, id int64) error
}
