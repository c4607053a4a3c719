// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/validate"
	"github.com/taibuivan/taskly/internal/users/auth"
	"github.com/taibuivan/taskly/pkg/pagination"
	"github.com/taibuivan/taskly/pkg/textnorm"
)

// UserFinder loads the account that creates an item.
type UserFinder interface {
	FindByID(context context.Context, id int64) (*auth.User, error)
}

// WeatherSource reports today's weather.
type WeatherSource interface {
	TodayWeather(ctx context.Context) (string, error)
}

// Service implements the to-do use cases.
type Service struct {
	repo    Repository
	users   UserFinder
	weather WeatherSource
	logger  *slog.Logger
}

// NewService constructs a new to-do [Service].
func NewService(repo Repository, users UserFinder, weather WeatherSource, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		weather: weather,
		logger:  logger,
	}
}

// CreateInput carries the fields of a new item.
type CreateInput struct {
	Title    string
	Contents string
}

/*
Create stores a new item for the caller.

Description: Loads the author, stamps today's weather and persists the item.

Parameters:
  - context: context.Context
  - authorID: int64 (the authenticated caller)
  - input: CreateInput

Returns:
  - *Todo: The stored item with its author
  - error: Validation, unknown author, weather or storage failures
*/
func (service *Service) Create(context context.Context, authorID int64, input CreateInput) (*Todo, error) {
	title := textnorm.Clean(input.Title)

	// ── 1. Validation ─────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, MaxTitleLength).
		Required(FieldContents, input.Contents)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Author ─────────────────────────────────────────────────────────
	author, err := service.users.FindByID(context, authorID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.BadRequest(auth.MsgUserNotFound)
		}
		return nil, fmt.Errorf("todo_service_author_lookup_failed: %w", err)
	}

	// ── 3. Weather ────────────────────────────────────────────────────────
	weather, err := service.weather.TodayWeather(context)
	if err != nil {
		return nil, apperr.ServiceUnavailable(MsgWeatherUnavailable).WithCause(err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────
	todo := &Todo{
		Title:    title,
		Contents: input.Contents,
		Weather:  weather,
		User:     auth.Summary{ID: author.ID, Email: author.Email},
	}

	if err := service.repo.Create(context, todo); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "todo_created",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("author_id", author.ID),
		slog.String("weather", weather),
	)

	return todo, nil
}

// Get retrieves one item.
func (service *Service) Get(context context.Context, id int64) (*Todo, error) {
	return service.repo.FindByID(context, id)
}

/*
List returns one page of items.

Description: Any combination of weather and modification range may be given.
Without filters every item is listed, most recently modified first.
*/
func (service *Service) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Todo, pagination.Meta, error) {
	filter.Weather = strings.TrimSpace(filter.Weather)

	todos, total, err := service.repo.List(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return todos, pagination.NewMeta(params, total), nil
}

/*
Search returns one page of search rows.

Description: Title and nickname are matched as substrings. Rows carry the
number of managers and comments on each item.
*/
func (service *Service) Search(context context.Context, filter SearchFilter, params pagination.Params) ([]SearchResult, pagination.Meta, error) {
	filter.Title = textnorm.Clean(filter.Title)
	filter.Nickname = textnorm.Clean(filter.Nickname)

	results, total, err := service.repo.Search(context, filter, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return results, pagination.NewMeta(params, total), nil
}
