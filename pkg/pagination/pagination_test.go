// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taskly/pkg/pagination"
)

/*
TestFromRequest checks parsing and clamping of page and size.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "?page=3&size=20", 3, 20, 40},
		{"negative_page", "?page=-2&size=5", 1, 5, 0},
		{"oversized", "?page=2&size=1000", 2, 100, 100},
		{"zero_size", "?size=0", 1, 10, 0},
		{"garbage", "?page=abc&size=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/todos"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
			assert.Equal(t, tt.wantSize, params.Limit())
			assert.Equal(t, tt.wantOffset, params.Offset())
		})
	}
}

/*
TestNewMeta rounds total pages up.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, Size: 10}, 21)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 21, meta.Total)

	empty := pagination.NewMeta(pagination.Params{Page: 1, Size: 10}, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
