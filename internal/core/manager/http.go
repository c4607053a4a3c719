// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manager

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskly/internal/platform/request"
	"github.com/taibuivan/taskly/internal/platform/respond"
	"github.com/taibuivan/taskly/internal/platform/validate"
)

// Handler implements the manager endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manager [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the endpoints under /todos/{todoId}/managers.
//
// # Endpoints
//   - POST   /            : Register a manager (author only, audited).
//   - GET    /            : List managers.
//   - DELETE /{managerId} : Remove a manager (author only).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.registerManager)
	router.Get("/", handler.listManagers)
	router.Delete("/{managerId}", handler.removeManager)
}

type registerManagerRequest struct {
	ManagerUserID int64 `json:"managerUserId"`
}

func (handler *Handler) registerManager(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	todoID, err := requestutil.ID(request, "todoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input registerManagerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := (&validate.Validator{}).Positive(FieldManagerUserID, input.ManagerUserID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	manager, err := handler.service.Register(request.Context(), identity, todoID, input.ManagerUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, manager)
}

func (handler *Handler) listManagers(writer http.ResponseWriter, request *http.Request) {
	todoID, err := requestutil.ID(request, "todoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	managers, err := handler.service.List(request.Context(), todoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, managers)
}

func (handler *Handler) removeManager(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	todoID, err := requestutil.ID(request, "todoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	managerID, err := requestutil.ID(request, "managerId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), identity, todoID, managerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
