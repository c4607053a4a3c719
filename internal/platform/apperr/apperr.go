// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type that crosses the service/HTTP boundary.

Services return [*AppError] for every failure a client is allowed to see: gate
rejections, validation failures, missing to-dos, forbidden manager changes.
Anything else that reaches the HTTP layer is treated as an internal error and
hidden behind a generic 500 by the respond package.

Codes:

	UNAUTHORIZED         401  missing, expired or unreadable token
	FORBIDDEN            403  role or ownership check failed
	BAD_REQUEST          400  business rule rejected the request
	VALIDATION_ERROR     400  field-level input errors (see Details)
	NOT_FOUND            404  named resource does not exist
	RATE_LIMITED         429  per-client limiter exhausted
	SERVICE_UNAVAILABLE  503  upstream dependency (weather provider) failed
	INTERNAL_ERROR       500  everything else
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// statusByCode maps each code onto its HTTP status.
var statusByCode = map[string]int{
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeBadRequest:         http.StatusBadRequest,
	CodeValidation:         http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeInternal:           http.StatusInternalServerError,
}

// internalMessage is the only text a client ever sees for a 500.
const internalMessage = "An unexpected error occurred"

// AppError is a client-visible failure.
//
// Message is written to the response body verbatim; Cause is logged and
// never serialized.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed input field of a VALIDATION_ERROR.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New builds an [AppError] whose status is derived from code.
// Unknown codes are reported as 500.
func New(code, message string) *AppError {
	status, known := statusByCode[code]
	if !known {
		status = http.StatusInternalServerError
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// # Constructors

// NotFound reports a missing resource, e.g. NotFound("Todo") → "Todo not found".
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError { return New(CodeUnauthorized, message) }

func Forbidden(message string) *AppError { return New(CodeForbidden, message) }

func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }

func ServiceUnavailable(message string) *AppError { return New(CodeServiceUnavailable, message) }

// ValidationError carries the per-field failures collected by the validator.
func ValidationError(message string, details ...FieldError) *AppError {
	appError := New(CodeValidation, message)
	appError.Details = details
	return appError
}

// RateLimited tells the client when to retry.
func RateLimited(retryAfterSeconds int) *AppError {
	return New(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal hides cause behind the generic 500 message.
func Internal(cause error) *AppError {
	return New(CodeInternal, internalMessage).WithCause(cause)
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// IsNotFound reports whether err carries a NOT_FOUND [*AppError].
func IsNotFound(err error) bool {
	appError := As(err)
	return appError != nil && appError.Code == CodeNotFound
}
