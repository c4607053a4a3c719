// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package weather fetches the daily weather label attached to new to-dos.
//
// # Caching
//
// The provider publishes a static yearly table, so today's entry is cached
// (Redis in production) until the configured TTL expires. Cache failures are
// logged and never fail the lookup.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/taskly/internal/platform/constants"
	"github.com/taibuivan/taskly/internal/platform/ctxutil"
)

// dateLayout is the provider's month-day format (MM-dd).
const dateLayout = "01-02"

var (
	// ErrUnavailable means the provider could not be reached or answered badly.
	ErrUnavailable = errors.New("weather: provider unavailable")

	// ErrNoEntry means the provider has no entry for today.
	ErrNoEntry = errors.New("weather: no entry for today")
)

// Cache is the storage used to memoize today's weather.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// entry is one element of the provider's JSON array.
type entry struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
}

// Option customises a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// WithClock replaces the clock used to pick today's entry.
func WithClock(now func() time.Time) Option {
	return func(client *Client) {
		client.now = now
	}
}

// Client looks up today's weather from the provider.
type Client struct {
	httpClient *http.Client
	url        string
	cache      Cache
	ttl        time.Duration
	now        func() time.Time
}

// NewClient creates a new Client. A nil cache disables caching.
func NewClient(url string, cache Cache, ttl time.Duration, options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: constants.WeatherRequestTimeout},
		url:        url,
		cache:      cache,
		ttl:        ttl,
		now:        time.Now,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// TodayWeather returns the weather label for the current month and day.
func (client *Client) TodayWeather(ctx context.Context) (string, error) {
	today := client.now().Format(dateLayout)
	cacheKey := constants.RedisPrefixWeather + today
	logger := ctxutil.GetLogger(ctx)

	// ── 1. Cache ──────────────────────────────────────────────────────────
	if client.cache != nil {
		cached, found, err := client.cache.Get(ctx, cacheKey)
		if err != nil {
			logger.WarnContext(ctx, "weather_cache_read_failed", slog.Any("error", err))
		} else if found {
			return cached, nil
		}
	}

	// ── 2. Provider ───────────────────────────────────────────────────────
	entries, err := client.fetch(ctx)
	if err != nil {
		return "", err
	}

	for _, item := range entries {
		if item.Date != today {
			continue
		}

		if client.cache != nil {
			if err := client.cache.Set(ctx, cacheKey, item.Weather, client.ttl); err != nil {
				logger.WarnContext(ctx, "weather_cache_write_failed", slog.Any("error", err))
			}
		}
		return item.Weather, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoEntry, today)
}

func (client *Client) fetch(ctx context.Context) ([]entry, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrUnavailable, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, response.StatusCode)
	}

	var entries []entry
	if err := json.NewDecoder(response.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrUnavailable, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrNoEntry)
	}

	return entries, nil
}
