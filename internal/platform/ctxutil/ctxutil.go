// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the per-request values keyed in ctxkey.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/taskly/internal/platform/ctxkey"
	"github.com/taibuivan/taskly/internal/platform/sec"
)

// lookup returns the value stored under key, or the zero T.
func lookup[T any](ctx context.Context, key any) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, ctxkey.RequestID)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// GetLogger falls back to [slog.Default] when no request logger is attached.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, ctxkey.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithIdentity attaches the authenticated caller to ctx and its children only.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.Identity, identity)
}

// GetIdentity returns nil on public paths and, unless injection is enabled, on admin paths.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, _ := lookup[*sec.Identity](ctx, ctxkey.Identity)
	return identity
}
