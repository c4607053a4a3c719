// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskly/internal/platform/request"
	"github.com/taibuivan/taskly/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the endpoints under /todos/{todoId}/comments.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createComment)
	router.Get("/", handler.listComments)
}

type createCommentRequest struct {
	Contents string `json:"contents"`
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
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

	var input createCommentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), identity, todoID, input.Contents)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	todoID, err := requestutil.ID(request, "todoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.List(request.Context(), todoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}
