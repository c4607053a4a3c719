// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taskly/pkg/textnorm"
)

/*
TestClean verifies normalization and whitespace handling.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "tester", "tester"},
		{"trim_and_collapse", "  hello \t  world \n", "hello world"},
		{"decomposed_hangul", "\u1112\u1161\u11ab", "\ud55c"},
		{"decomposed_accent", "cafe\u0301", "caf\u00e9"},
		{"control_removed", "ni\x00ck", "nick"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Clean(tt.input))
		})
	}
}
