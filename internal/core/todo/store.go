// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"

	"github.com/taibuivan/taskly/pkg/pagination"
)

// Repository defines the data access contract for to-do items.
type Repository interface {
	/*
		Create persists a new item and registers its author as a manager.

		Parameters:
		  - context: context.Context
		  - todo: *Todo (ID, CreatedAt and UpdatedAt are filled in)

		Returns:
		  - error: Database errors
	*/
	Create(context context.Context, todo *Todo) error

	/*
		FindByID retrieves one item with its author.

		Returns:
		  - *Todo: The item
		  - error: apperr.NotFound ("Todo not found") or database errors
	*/
	FindByID(context context.Context, id int64) (*Todo, error)

	/*
		List returns one page of items ordered by modification time, newest first.

		Returns:
		  - []*Todo: The page
		  - int: Total number of matching items
		  - error: Database errors
	*/
	List(context context.Context, filter ListFilter, params pagination.Params) ([]*Todo, int, error)

	/*
		Search returns one page of search rows ordered by creation time, newest first.

		Returns:
		  - []SearchResult: The page
		  - int: Total number of matching items
		  - error: Database errors
	*/
	Search(context context.Context, filter SearchFilter, params pagination.Params) ([]SearchResult, int, error)
}
