// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskly/internal/platform/apperr"
	"github.com/taibuivan/taskly/internal/platform/dberr"
)

/*
TestWrap classifies missing rows and unknown failures.
*/
func TestWrap(t *testing.T) {
	assert.Nil(t, dberr.Wrap(nil, "Todo"))

	notFound := apperr.As(dberr.Wrap(pgx.ErrNoRows, "Todo"))
	require.NotNil(t, notFound)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	assert.Equal(t, "Todo not found", notFound.Message)

	internal := apperr.As(dberr.Wrap(errors.New("connection reset"), "Todo"))
	require.NotNil(t, internal)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
}

/*
TestConstraintViolations detects SQLSTATE codes through wrapping.
*/
func TestConstraintViolations(t *testing.T) {
	unique := fmt.Errorf("insert account: %w", &pgconn.PgError{Code: "23505"})
	foreignKey := &pgconn.PgError{Code: "23503"}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.False(t, dberr.IsUniqueViolation(foreignKey))
	assert.True(t, dberr.IsForeignKeyViolation(foreignKey))
	assert.False(t, dberr.IsForeignKeyViolation(errors.New("other")))
}
