// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages comments attached to to-do items.
package comment

import (
	"context"
	"time"

	"github.com/taibuivan/taskly/internal/users/auth"
)

// Comment is a remark left on a to-do item.
type Comment struct {
	ID        int64        `json:"id"`
	TodoID    int64        `json:"todoId"`
	Contents  string       `json:"contents"`
	User      auth.Summary `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// FieldContents names the comment body in payloads.
const FieldContents = "contents"

// MaxContentsLength bounds stored comments.
const MaxContentsLength = 1000

// Repository defines the data access contract for comments.
type Repository interface {
	// Create persists a comment and fills in its ID and CreatedAt.
	Create(context context.Context, comment *Comment) error

	// ListByTodo returns the comments on one item, oldest first.
	ListByTodo(context context.Context, todoID int64) ([]*Comment, error)
}
