// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskly/internal/platform/request"
	"github.com/taibuivan/taskly/internal/platform/respond"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the endpoints available to any authenticated caller.
//
// # Endpoints
//   - GET /{userId} : Public profile.
//   - PUT /         : Change the caller's password.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{userId}", handler.getUser)
	router.Put("/", handler.changePassword)
}

// RegisterAdminRoutes mounts the endpoints guarded by the admin prefix.
//
// # Endpoints
//   - PATCH /{userId} : Change a user's role.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Patch("/{userId}", handler.changeRole)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

/*
GET /users/{userId}.

Response:
  - 200: UserResponse
  - 404: User not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /users.

Description: Changes the authenticated caller's password.

Response:
  - 204: Password changed
  - 400: Validation failure or wrong old password
  - 401: No identity on the request
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), identity.UserID, ChangePasswordInput(input)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PATCH /admin/users/{userId}.

Response:
  - 200: RoleResponse
  - 400: Unknown role
  - 404: User not found
*/
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeRoleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.ChangeRole(request.Context(), userID, input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
