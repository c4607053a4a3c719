// Copyright (c) 2026 Taskly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level input errors into one VALIDATION_ERROR.
//
// Services build a [Validator], chain the rules for each input field and call
// [Validator.Err] once at the end. Every failed rule appears in the response
// details, so a client fixing a signup form sees all problems at once.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/taskly/internal/platform/apperr"
)

// failureMessage is the top-level message of every VALIDATION_ERROR.
const failureMessage = "Validation failed"

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates rule failures. Use one per operation; it is not safe
// for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

// check records message for field when ok is false.
func (v *Validator) check(ok bool, field, message string) *Validator {
	if !ok {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required fails on blank input.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, "This field is required")
}

// MaxLen counts runes, so Hangul nicknames are measured in characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(utf8.RuneCountInString(value) <= max, field, fmt.Sprintf("Maximum %d characters", max))
}

func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(utf8.RuneCountInString(value) >= min, field, fmt.Sprintf("Minimum %d characters", min))
}

// Positive fails unless value is a usable row id.
func (v *Validator) Positive(field string, value int64) *Validator {
	return v.check(value > 0, field, "Must be a positive integer")
}

// Email accepts a bare RFC 5322 address only, not "Name <addr>" forms.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	return v.check(err == nil && address.Address == value, field, "Must be a valid email address")
}

// Password requires minLen characters including a digit and an uppercase letter.
func (v *Validator) Password(field, value string, minLen int) *Validator {
	strong := utf8.RuneCountInString(value) >= minLen &&
		strings.IndexFunc(value, unicode.IsDigit) >= 0 &&
		strings.IndexFunc(value, unicode.IsUpper) >= 0

	return v.check(strong, field, fmt.Sprintf("Must be at least %d characters and contain a digit and an uppercase letter", minLen))
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err returns nil when every rule passed, else a VALIDATION_ERROR listing all failures.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failureMessage, v.failures...)
}

// Field builds a VALIDATION_ERROR for a single field outside a chain.
func Field(field, message string) *apperr.AppError {
	return apperr.ValidationError(failureMessage, apperr.FieldError{Field: field, Message: message})
}
