// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package weather_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/platform/weather"
)

// memoryCache is an in-process weather.Cache.
type memoryCache struct {
	mu      sync.Mutex
	values  map[string]string
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (cache *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.failGet {
		return "", false, errors.New("cache down")
	}
	value, found := cache.values[key]
	return value, found, nil
}

func (cache *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.values[key] = value
	return nil
}

var fixedNow = func() time.Time { return time.Date(2026, 7, 14, 8, 0, 0, 0, time.UTC) }

func newProvider(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	calls := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, calls
}

/*
TestClient_TodayWeather picks today's entry and caches it.
*/
func TestClient_TodayWeather(t *testing.T) {
	server, calls := newProvider(t, http.StatusOK, `[{"date":"07-13","weather":"Rainy"},{"date":"07-14","weather":"Sunny"}]`)
	cache := newMemoryCache()

	client := weather.NewClient(server.URL, cache, time.Hour, weather.WithClock(fixedNow))

	// 1. Fetched from the provider
	label, err := client.TodayWeather(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sunny", label)

	// 2. Served from the cache
	label, err = client.TodayWeather(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sunny", label)
	assert.Equal(t, int32(1), calls.Load())
}

/*
TestClient_CacheFailure falls back to the provider.
*/
func TestClient_CacheFailure(t *testing.T) {
	server, calls := newProvider(t, http.StatusOK, `[{"date":"07-14","weather":"Cloudy"}]`)
	cache := newMemoryCache()
	cache.failGet = true

	client := weather.NewClient(server.URL, cache, time.Hour, weather.WithClock(fixedNow))

	label, err := client.TodayWeather(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cloudy", label)
	assert.Equal(t, int32(1), calls.Load())
}

/*
TestClient_Failures classifies provider errors.
*/
func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server_error", http.StatusBadGateway, ``, weather.ErrUnavailable},
		{"invalid_json", http.StatusOK, `{not json`, weather.ErrUnavailable},
		{"empty_table", http.StatusOK, `[]`, weather.ErrNoEntry},
		{"no_entry_for_today", http.StatusOK, `[{"date":"01-01","weather":"Snowy"}]`, weather.ErrNoEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newProvider(t, tt.status, tt.body)
			client := weather.NewClient(server.URL, nil, time.Hour, weather.WithClock(fixedNow))

			_, err := client.TodayWeather(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
