// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/constants"
	"github.com/taibuivan/taskly/internal/platform/ctxutil"
	"github.com/taibuivan/taskly/internal/platform/respond"
	"github.com/taibuivan/taskly/internal/platform/sec"
)

// Client-facing rejection messages written by [Gate].
const (
	MsgTokenRequired    = "JWT 토큰이 필요합니다."
	MsgTokenExpired     = "만료된 JWT 토큰입니다."
	MsgBadSignature     = "유효하지 않는 JWT 서명입니다."
	MsgUnsupportedToken = "지원되지 않는 JWT 토큰입니다."
	MsgMalformedToken   = "JWT 토큰이 잘못되었습니다."
	MsgInvalidToken     = "잘못된 토큰입니다."
	MsgAdminRequired    = "관리자 권한이 없습니다."
)

// Gate outcomes reported to the [GateRecorder]. Every request ends in exactly one.
const (
	OutcomeForwardedPublic        = "forwarded_public"
	OutcomeForwardedAdmin         = "forwarded_admin"
	OutcomeForwardedAuthenticated = "forwarded_authenticated"
	OutcomeRejectedMissingHeader  = "rejected_missing_header"
	OutcomeRejectedBadToken       = "rejected_bad_token"
	OutcomeRejectedBadClaims      = "rejected_bad_claims"
	OutcomeRejectedForbidden      = "rejected_forbidden"
	OutcomeInternalError          = "internal_error"
)

// TokenDecoder is the part of [*sec.TokenService] the gate uses.
type TokenDecoder interface {
	StripScheme(header string) (string, error)
	Decode(raw string) (jwt.MapClaims, error)
}

// GateRecorder receives the terminal outcome of every gated request.
type GateRecorder interface {
	RecordGateDecision(outcome string)
}

// GatePolicy classifies request paths.
type GatePolicy struct {
	// PublicPrefixes bypass authentication entirely.
	PublicPrefixes []string

	// AdminPrefixes require the ADMIN role.
	AdminPrefixes []string

	// InjectAdminIdentity attaches the identity on admin paths as well.
	// When false, handlers under admin prefixes see no identity.
	InjectAdminIdentity bool
}

// IsPublic reports whether path starts with any public prefix.
func (policy GatePolicy) IsPublic(path string) bool {
	return hasAnyPrefix(path, policy.PublicPrefixes)
}

// IsAdmin reports whether path starts with any admin prefix.
func (policy GatePolicy) IsAdmin(path string) bool {
	return hasAnyPrefix(path, policy.AdminPrefixes)
}

// hasAnyPrefix uses raw string prefixes, so "/auth" also matches "/authority".
func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// gateDecision is the result of authorizing one request.
type gateDecision struct {
	outcome  string
	identity *sec.Identity
	err      error
}

// Gate authenticates and authorizes every request before it reaches a handler.
//
// # Flow
//  1. Public paths are forwarded untouched.
//  2. The Authorization header must carry a Bearer token.
//  3. The token is decoded and verified by [TokenDecoder].
//  4. The identity is extracted from the claims.
//  5. Admin paths require the ADMIN role.
//  6. The [*sec.Identity] is attached to the request context, the request
//     logger gains user_id and role, and the request is forwarded.
//
// Rejected requests are answered with the standard error envelope and are never
// forwarded. A panic while deciding is answered with 500. Panics raised by
// downstream handlers are left to [PanicRecovery].
func Gate(policy GatePolicy, decoder TokenDecoder, recorder GateRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Public Paths ───────────────────────────────────────────────
			if policy.IsPublic(request.URL.Path) {
				recorder.RecordGateDecision(OutcomeForwardedPublic)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Decision ───────────────────────────────────────────────────
			decision := authorize(policy, decoder, request)
			recorder.RecordGateDecision(decision.outcome)

			if decision.err != nil {
				respond.Error(writer, request, decision.err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			if decision.identity != nil {
				ctx := ctxutil.WithIdentity(request.Context(), decision.identity)
				ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(
					slog.Int64("user_id", decision.identity.UserID),
					slog.String("role", decision.identity.Role.String()),
				))
				request = request.WithContext(ctx)
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// authorize runs steps 2 to 5 of [Gate]. It never panics.
func authorize(policy GatePolicy, decoder TokenDecoder, request *http.Request) (decision gateDecision) {
	ctx := request.Context()

	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		ctxutil.GetLogger(ctx).ErrorContext(ctx, "auth_gate_panic",
			slog.Any("error", recovered),
			slog.String("stack", stackTrace()),
		)
		decision = gateDecision{
			outcome: OutcomeInternalError,
			err:     apperr.Internal(fmt.Errorf("auth gate panic: %v", recovered)),
		}
	}()

	// ── 1. Header Presence ────────────────────────────────────────────────
	raw, err := decoder.StripScheme(request.Header.Get(constants.HeaderAuthorization))
	if err != nil {
		return gateDecision{outcome: OutcomeRejectedMissingHeader, err: apperr.Unauthorized(MsgTokenRequired)}
	}

	// ── 2. Token Verification ─────────────────────────────────────────────
	claims, err := decoder.Decode(raw)
	if err != nil {
		return decodeFailure(request, err)
	}

	if len(claims) == 0 {
		return gateDecision{outcome: OutcomeRejectedBadToken, err: apperr.BadRequest(MsgInvalidToken)}
	}

	// ── 3. Claims Extraction ──────────────────────────────────────────────
	identity, err := sec.IdentityFromClaims(claims)
	if err != nil {
		var claimError *sec.ClaimError
		if errors.As(err, &claimError) {
			return gateDecision{outcome: OutcomeRejectedBadClaims, err: apperr.Unauthorized(claimError.Reason).WithCause(err)}
		}
		return internalFailure(request, err)
	}

	// ── 4. Admin Authorization ────────────────────────────────────────────
	if policy.IsAdmin(request.URL.Path) {
		if err := sec.RequireRole(identity.Role, sec.RoleAdmin); err != nil {
			return gateDecision{outcome: OutcomeRejectedForbidden, err: apperr.Forbidden(MsgAdminRequired).WithCause(err)}
		}

		if !policy.InjectAdminIdentity {
			return gateDecision{outcome: OutcomeForwardedAdmin}
		}
		return gateDecision{outcome: OutcomeForwardedAdmin, identity: identity}
	}

	return gateDecision{outcome: OutcomeForwardedAuthenticated, identity: identity}
}

// decodeFailure maps codec errors to client responses.
func decodeFailure(request *http.Request, err error) gateDecision {
	var message string

	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		message = MsgTokenExpired
	case errors.Is(err, sec.ErrBadSignature):
		message = MsgBadSignature
	case errors.Is(err, sec.ErrUnsupportedToken):
		message = MsgUnsupportedToken
	case errors.Is(err, sec.ErrMalformedToken):
		message = MsgMalformedToken
	default:
		return internalFailure(request, err)
	}

	return gateDecision{outcome: OutcomeRejectedBadToken, err: apperr.Unauthorized(message).WithCause(err)}
}

func internalFailure(request *http.Request, err error) gateDecision {
	ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "auth_gate_internal_error",
		slog.String("error", err.Error()),
	)
	return gateDecision{outcome: OutcomeInternalError, err: apperr.Internal(err)}
}
