// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/taskly/internal/core/comment"
	"github.com/taibuivan/taskly/internal/core/manager"
	"github.com/taibuivan/taskly/internal/core/todo"
	"github.com/taibuivan/taskly/internal/platform/config"
	"github.com/taibuivan/taskly/internal/platform/constants"
	"github.com/taibuivan/taskly/internal/platform/middleware"
	"github.com/taibuivan/taskly/internal/users/account"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Metrics serves the Prometheus exposition format on /metrics.
	Metrics http.Handler

	// Auth handles signup and signin.
	Auth *auth.Handler

	// Account handles profiles, password changes and role changes.
	Account *account.Handler

	// Todo handles to-do items and search.
	Todo *todo.Handler

	// Comment handles comments nested under a to-do item.
	Comment *comment.Handler

	// Manager handles managers nested under a to-do item.
	Manager *manager.Handler
}

// Observability groups the sinks fed by the middleware chain.
type Observability struct {
	Requests middleware.RequestObserver
	Gate     middleware.GateRecorder
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Middleware Chain
//
// RequestID, StructuredLogger, Timeout, RateLimit, PanicRecovery, Instrument,
// CORS, Gate. The gate runs last so that rejections are logged, counted and
// carry CORS headers, and so that panics in handlers behind it still reach
// PanicRecovery. Paths are not cleaned before routing: the gate classifies the
// same path the router matches.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, decoder middleware.TokenDecoder, observability Observability, h Handlers) *Server {
	r := chi.NewRouter()

	policy := middleware.GatePolicy{
		PublicPrefixes:      cfg.AuthPublicPrefixes,
		AdminPrefixes:       cfg.AuthAdminPrefixes,
		InjectAdminIdentity: cfg.AuthInjectAdminIdentity,
	}

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.Instrument(observability.Requests))
	r.Use(middleware.CORS(cfg, cfg.AllowedOrigins))
	r.Use(middleware.Gate(policy, decoder, observability.Gate))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.Metrics)

	// # Application API
	r.Route("/auth", h.Auth.RegisterRoutes)
	r.Route("/users", h.Account.RegisterRoutes)
	r.Route("/admin/users", h.Account.RegisterAdminRoutes)
	r.Route("/todos", func(todos chi.Router) {
		h.Todo.RegisterRoutes(todos)
		todos.Route("/{todoId}/comments", h.Comment.RegisterRoutes)
		todos.Route("/{todoId}/managers", h.Manager.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
