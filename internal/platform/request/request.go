// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads handler inputs: chi path ids, query filters, date
ranges, JSON bodies and the caller attached by the gate. Every parse failure
is returned as a VALIDATION_ERROR naming the offending parameter.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/ctxutil"
	"github.com/taibuivan/taskly/internal/platform/sec"
	"github.com/taibuivan/taskly/internal/platform/validate"
)

// DateLayout is the ISO calendar date accepted in query strings (yyyy-MM-dd).
const DateLayout = time.DateOnly

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID parses a named URL parameter as a positive int64 identifier.

Returns:
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validate.Field(name, "Must be a positive integer")
	}

	if err := (&validate.Validator{}).Positive(name, id).Err(); err != nil {
		return 0, err
	}

	return id, nil
}

/*
Query returns a trimmed query parameter and whether it was non-empty.
*/
func Query(request *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(request.URL.Query().Get(name))
	return value, value != ""
}

/*
DateRange parses an optional pair of yyyy-MM-dd query parameters.

The start is the beginning of its day and the end is the last second of its day,
both in UTC. When either bound is missing the range is absent and ok is false.
*/
func DateRange(request *http.Request, startName, endName string) (start, end time.Time, ok bool, err error) {
	rawStart, hasStart := Query(request, startName)
	rawEnd, hasEnd := Query(request, endName)
	if !hasStart || !hasEnd {
		return time.Time{}, time.Time{}, false, nil
	}

	start, err = time.Parse(DateLayout, rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, false, validate.Field(startName, "Must be a date in yyyy-MM-dd format")
	}

	endDay, err := time.Parse(DateLayout, rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false, validate.Field(endName, "Must be a date in yyyy-MM-dd format")
	}

	end = endDay.Add(24*time.Hour - time.Second)
	if end.Before(start) {
		return time.Time{}, time.Time{}, false, validate.Field(endName, "Must not be before "+startName)
	}

	return start, end, true, nil
}

/*
Identity returns the authenticated caller, or nil on public and admin paths.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity returns the caller or a 401 when the gate attached none.

Returns:
  - *sec.Identity: The caller attached by the authentication gate
  - error: apperr.Unauthorized if no identity is present
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
