// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/taskly/internal/platform/request"
	"github.com/taibuivan/taskly/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
//
// # Scope
//
// Mounted under /auth, which the request gate treats as public. Handlers here
// never read an identity from the context.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the authentication endpoints.
//
// # Endpoints
//   - POST /signup : Creates a new account and returns a bearer token.
//   - POST /signin : Authenticates and returns a bearer token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signup)
	router.Post("/signin", handler.signin)
}

// # Request Payloads

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	UserRole string `json:"userRole"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	BearerToken string `json:"bearerToken"`
}

/*
signup handles the creation of a new user account.

POST /auth/signup

Response:
  - 201: TokenResponse
  - 400: Validation failure, invalid role, or duplicate email
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Signup(request.Context(), SignupInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, TokenResponse{BearerToken: token})
}

/*
signin authenticates a user by email and password.

POST /auth/signin

Response:
  - 200: TokenResponse
  - 401: Invalid credentials
*/
func (handler *Handler) signin(writer http.ResponseWriter, request *http.Request) {
	var input signinRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Signin(request.Context(), SigninInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, TokenResponse{BearerToken: token})
}
