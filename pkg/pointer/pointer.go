// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer converts between values and the optional (*T) fields used
// by audit entries and list filters.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, yielding the zero T for nil.
func Val[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
