// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination turns ?page=&size= into LIMIT/OFFSET and back into the
// "meta" block of list responses. Pages are 1-indexed.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage = 1
	DefaultSize = 10

	// MaxSize caps a single page; larger requests are clamped to it.
	MaxSize = 100
)

// Params is one page request.
type Params struct {
	Page int
	Size int
}

// Limit is the SQL LIMIT for p.
func (p Params) Limit() int {
	return p.Size
}

// Offset is the SQL OFFSET for p.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Size
}

// Meta describes the page that was returned.
type Meta struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta computes TotalPages by rounding total/size up.
func NewMeta(params Params, total int) Meta {
	meta := Meta{Page: params.Page, Size: params.Size, Total: total}
	if params.Size > 0 {
		meta.TotalPages = (total + params.Size - 1) / params.Size
	}
	return meta
}

/*
FromRequest reads page and size from the query string.

Description: Missing or unparsable values and values below 1 take the
defaults. A size above [MaxSize] is clamped to [MaxSize].
*/
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()
	return Params{
		Page: positiveOr(query.Get("page"), DefaultPage),
		Size: min(positiveOr(query.Get("size"), DefaultSize), MaxSize),
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
