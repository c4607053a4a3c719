// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskly/internal/platform/request"
	"github.com/taibuivan/taskly/internal/platform/respond"
	"github.com/taibuivan/taskly/pkg/pagination"
	"github.com/taibuivan/taskly/pkg/pointer"
)

// Handler implements the to-do endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new to-do [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the to-do endpoints.
//
// # Endpoints
//   - POST /          : Create an item for the caller.
//   - GET  /          : List items (page, size, weather, startDate, endDate).
//   - GET  /search    : Search items (page, size, title, nickname, startDate, endDate).
//   - GET  /{todoId}  : Get one item.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createTodo)
	router.Get("/", handler.listTodos)
	router.Get("/search", handler.searchTodos)
	router.Get("/{todoId}", handler.getTodo)
}

type createTodoRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

/*
POST /todos.

Response:
  - 201: Todo
  - 400: Validation failure or unknown author
  - 401: No identity on the request
  - 503: Weather provider unavailable
*/
func (handler *Handler) createTodo(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTodoRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	todo, err := handler.service.Create(request.Context(), identity.UserID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, todo)
}

/*
GET /todos.

Description: startDate and endDate (yyyy-MM-dd) bound the modification date
and must be given together.
*/
func (handler *Handler) listTodos(writer http.ResponseWriter, request *http.Request) {
	start, end, hasRange, err := requestutil.DateRange(request, FieldStartDate, FieldEndDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{}
	filter.Weather, _ = requestutil.Query(request, FieldWeather)
	if hasRange {
		filter.ModifiedFrom, filter.ModifiedTo = pointer.To(start), pointer.To(end)
	}

	params := pagination.FromRequest(request)
	todos, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, todos, meta)
}

/*
GET /todos/search.

Description: startDate and endDate (yyyy-MM-dd) bound the creation date.
*/
func (handler *Handler) searchTodos(writer http.ResponseWriter, request *http.Request) {
	start, end, hasRange, err := requestutil.DateRange(request, FieldStartDate, FieldEndDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := SearchFilter{}
	filter.Title, _ = requestutil.Query(request, FieldTitle)
	filter.Nickname, _ = requestutil.Query(request, FieldNickname)
	if hasRange {
		filter.CreatedFrom, filter.CreatedTo = pointer.To(start), pointer.To(end)
	}

	params := pagination.FromRequest(request)
	results, meta, err := handler.service.Search(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, results, meta)
}

// GET /todos/{todoId}.
func (handler *Handler) getTodo(writer http.ResponseWriter, request *http.Request) {
	todoID, err := requestutil.ID(request, "todoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	todo, err := handler.service.Get(request.Context(), todoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, todo)
}
