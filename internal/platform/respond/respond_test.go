// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/ctxutil"
	"github.com/taibuivan/taskly/internal/platform/respond"
	"github.com/taibuivan/taskly/pkg/pagination"
)

/*
TestError verifies the error envelope for application and unknown errors.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{"forbidden", apperr.Forbidden("관리자 권한이 없습니다."), http.StatusForbidden, "FORBIDDEN", "관리자 권한이 없습니다."},
		{"bad_request", apperr.BadRequest("잘못된 토큰입니다."), http.StatusBadRequest, "BAD_REQUEST", "잘못된 토큰입니다."},
		{"unknown_error_hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/todos", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

/*
TestError_RequestID echoes the correlation id and field details.
*/
func TestError_RequestID(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/todos", nil)
	request = request.WithContext(ctxutil.WithRequestID(request.Context(), "req-42"))
	recorder := httptest.NewRecorder()

	respond.Error(recorder, request, fmt.Errorf("todo_service_create_failed: %w",
		apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "This field is required"})))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.RequestID)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "title", body.Details[0].Field)
}

/*
TestPaginated wraps items with their page metadata.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(pagination.Params{Page: 2, Size: 1}, 3))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":["a"],"meta":{"page":2,"size":1,"total":3,"totalPages":3}}`, recorder.Body.String())
}
