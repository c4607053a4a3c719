// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys for per-request values.
//
// Each key has its own unexported empty struct type, so no other package can
// construct an equal key.
package ctxkey

type (
	requestIDKey struct{}
	identityKey  struct{}
	loggerKey    struct{}
)

var (
	// RequestID carries the X-Request-ID correlation value (string).
	RequestID = requestIDKey{}

	// Identity carries the caller attached by the gate (*sec.Identity).
	Identity = identityKey{}

	// Logger carries the request-scoped *slog.Logger.
	Logger = loggerKey{}
)
