// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied display text.
//
// # Usage
//
// Nicknames and to-do titles are stored in NFC form with collapsed whitespace,
// so that visually identical Hangul or accented input compares and searches equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean converts s into its canonical stored form.
//
// # Transformation Pipeline
//
// 1. Drops control characters.
// 2. Normalizes to NFC (composes decomposed jamo and accents).
// 3. Collapses runs of whitespace into a single space and trims the ends.
func Clean(s string) string {
	// 1. Normalize and strip control characters
	t := transform.Chain(transform.RemoveFunc(isControl), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = norm.NFC.String(s)
	}

	// 2. Collapse whitespace
	return strings.Join(strings.Fields(result), " ")
}

// isControl reports whether r is a control character other than whitespace.
func isControl(r rune) bool {
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}
