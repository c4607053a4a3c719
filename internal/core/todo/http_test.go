// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/core/todo"
	"github.com/taibuivan/taskly/internal/platform/ctxutil"
	"github.com/taibuivan/taskly/internal/platform/sec"
)

func newRouter(repository *memoryTodos) http.Handler {
	service := todo.NewService(repository, knownUsers(), stubWeather{weather: "Sunny"}, discardLogger())

	router := chi.NewRouter()
	router.Route("/todos", todo.NewHandler(service).RegisterRoutes)
	return router
}

func serve(router http.Handler, method, target, body string, identity *sec.Identity) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if identity != nil {
		request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_CreateAndGet requires an identity to create and serves the item back.
*/
func TestHandler_CreateAndGet(t *testing.T) {
	router := newRouter(&memoryTodos{})
	caller := sec.NewIdentity(1, "user@taskly.dev", sec.RoleUser, "tester")

	recorder := serve(router, http.MethodPost, "/todos", `{"title":"t","contents":"c"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(router, http.MethodPost, "/todos", `{"title":"t","contents":"c"}`, caller)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"weather":"Sunny"`)
	assert.Contains(t, recorder.Body.String(), `"email":"user@taskly.dev"`)

	recorder = serve(router, http.MethodGet, "/todos/1", "", caller)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(router, http.MethodGet, "/todos/2", "", caller)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Todo not found")
}

/*
TestHandler_ListFilters maps query parameters onto the list filter.
*/
func TestHandler_ListFilters(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantFilter todo.ListFilter
		wantPage   int
		wantSize   int
	}{
		{"defaults", "/todos", http.StatusOK, todo.ListFilter{}, 1, 10},
		{"weather_only", "/todos?weather=Rainy&page=2&size=5", http.StatusOK, todo.ListFilter{Weather: "Rainy"}, 2, 5},
		{
			"weather_and_range", "/todos?weather=Rainy&startDate=2026-03-01&endDate=2026-03-02", http.StatusOK,
			todo.ListFilter{
				Weather:      "Rainy",
				ModifiedFrom: ptr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
				ModifiedTo:   ptr(time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)),
			}, 1, 10,
		},
		{"half_range_ignored", "/todos?startDate=2026-03-01", http.StatusOK, todo.ListFilter{}, 1, 10},
		{"bad_date", "/todos?startDate=03/01/2026&endDate=2026-03-02", http.StatusBadRequest, todo.ListFilter{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &memoryTodos{}
			recorder := serve(newRouter(repository), http.MethodGet, tt.target, "", nil)

			require.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantFilter, repository.lastList)
			assert.Equal(t, tt.wantPage, repository.lastParams.Page)
			assert.Equal(t, tt.wantSize, repository.lastParams.Size)
			assert.Contains(t, recorder.Body.String(), `"meta"`)
		})
	}
}

/*
TestHandler_Search maps query parameters onto the search filter.
*/
func TestHandler_Search(t *testing.T) {
	repository := &memoryTodos{searchResult: []todo.SearchResult{{ID: 3, Title: "buy milk", ManagerCount: 2, CommentCount: 1}}}

	recorder := serve(newRouter(repository), http.MethodGet,
		"/todos/search?title=milk&nickname=tes&startDate=2026-01-01&endDate=2026-01-31", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, "milk", repository.lastSearch.Title)
	assert.Equal(t, "tes", repository.lastSearch.Nickname)
	require.NotNil(t, repository.lastSearch.CreatedFrom)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC), *repository.lastSearch.CreatedTo)
	assert.Contains(t, recorder.Body.String(), `"managerCount":2`)
	assert.Contains(t, recorder.Body.String(), `"commentCount":1`)
}

func ptr(value time.Time) *time.Time {
	return &value
}
