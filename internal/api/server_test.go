// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/api"
	"github.com/taibuivan/taskly/internal/core/comment"
	"github.com/taibuivan/taskly/internal/core/manager"
	"github.com/taibuivan/taskly/internal/core/todo"
	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/config"
	"github.com/taibuivan/taskly/internal/platform/metrics"
	"github.com/taibuivan/taskly/internal/platform/middleware"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/users/account"
	"github.com/taibuivan/taskly/internal/users/auth"
)

// singleAccount serves user 1 only.
type singleAccount struct{}

func (singleAccount) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if id != 1 {
		return nil, apperr.NotFound("User")
	}
	return &auth.User{ID: 1, Email: "user@taskly.dev", Nickname: "tester", Role: sec.RoleUser}, nil
}

func (singleAccount) UpdatePassword(context.Context, int64, string) error { return nil }

func (singleAccount) UpdateRole(context.Context, int64, sec.Role) error { return nil }

type fixture struct {
	handler http.Handler
	tokens  *sec.TokenService
}

func newFixture(t *testing.T, readyErr error) fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	key, err := sec.NewSigningKey(base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef")))
	require.NoError(t, err)
	tokens, err := sec.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	cfg, err := config.FromMap(map[string]string{
		"DATABASE_URL":   "postgres://unused",
		"JWT_SECRET_KEY": "unused",
		"ENVIRONMENT":    "test",
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := metrics.New()

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return readyErr },
	}, logger)

	todoService := todo.NewService(nil, nil, nil, logger)
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   registry.Handler(),
		Auth:      auth.NewHandler(auth.NewService(nil, tokens, logger)),
		Account:   account.NewHandler(account.NewService(singleAccount{}, logger)),
		Todo:      todo.NewHandler(todoService),
		Comment:   comment.NewHandler(comment.NewService(nil, nil, logger)),
		Manager:   manager.NewHandler(manager.NewService(nil, nil, nil, nil, logger)),
	}

	server := api.NewServer(ctx, cfg, logger, tokens, api.Observability{Requests: registry, Gate: registry}, handlers)
	return fixture{handler: server.Handler(), tokens: tokens}
}

func (f fixture) serve(t *testing.T, method, target, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.RemoteAddr = "192.0.2.10:4000"
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)
	return recorder
}

func (f fixture) token(t *testing.T, role sec.Role) string {
	t.Helper()

	token, err := f.tokens.Issue(1, "user@taskly.dev", role, "tester")
	require.NoError(t, err)
	return token
}

/*
TestServer_Gate drives requests through the full middleware chain.
*/
func TestServer_Gate(t *testing.T) {
	f := newFixture(t, nil)
	userToken := f.token(t, sec.RoleUser)
	adminToken := f.token(t, sec.RoleAdmin)

	tests := []struct {
		name          string
		method        string
		target        string
		body          string
		authorization string
		wantStatus    int
		wantBody      string
	}{
		{"health_public", http.MethodGet, "/health", "", "", http.StatusOK, `"status":"ok"`},
		{"missing_header", http.MethodGet, "/todos", "", "", http.StatusUnauthorized, middleware.MsgTokenRequired},
		{"garbage_token", http.MethodGet, "/users/1", "", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
		{"user_reads_profile", http.MethodGet, "/users/1", "", userToken, http.StatusOK, `"nickname":"tester"`},
		{"user_on_admin_path", http.MethodPatch, "/admin/users/1", `{"role":"ADMIN"}`, userToken, http.StatusForbidden, middleware.MsgAdminRequired},
		{"admin_on_admin_path", http.MethodPatch, "/admin/users/1", `{"role":"ADMIN"}`, adminToken, http.StatusOK, `"userRole":"ADMIN"`},
		{"signup_is_public", http.MethodPost, "/auth/signup", `{}`, "", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.serve(t, tt.method, tt.target, tt.body, tt.authorization)
			assert.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

/*
TestServer_Metrics exposes gate outcomes on the public metrics route.
*/
func TestServer_Metrics(t *testing.T) {
	f := newFixture(t, nil)

	f.serve(t, http.MethodGet, "/todos", "", "")

	recorder := f.serve(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `taskly_auth_gate_decisions_total{outcome="rejected_missing_header"} 1`)
	assert.Contains(t, recorder.Body.String(), `taskly_http_requests_total`)
}

/*
TestServer_Readiness reports 503 when a dependency check fails.
*/
func TestServer_Readiness(t *testing.T) {
	healthy := newFixture(t, nil).serve(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, healthy.Code)
	assert.Contains(t, healthy.Body.String(), `"status":"ready"`)

	degraded := newFixture(t, errors.New("connection refused")).serve(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, degraded.Code)
	assert.Contains(t, degraded.Body.String(), `"status":"degraded"`)
}
