// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field errors on catalog payloads and reports
// them together as one [apperr.AppError].
//
// Services validate before opening a unit of work, so a rejected payload
// never reaches the change tracker.
package validate

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

const msgRequired = "This field is required"

// Validator accumulates field errors through a chainable API. It is not
// safe for concurrent use; build one per payload.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, msgRequired)
	}
	return v
}

// RequiredTime fails on the zero time.
func (v *Validator) RequiredTime(field string, value time.Time) *Validator {
	if value.IsZero() {
		v.add(field, msgRequired)
	}
	return v
}

// MaxLen fails if the rune count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if value is outside [min, max].
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// ID fails unless value can be a primary key.
func (v *Validator) ID(field string, value int) *Validator {
	if value < 1 {
		v.add(field, "Must be a positive id")
	}
	return v
}

// IDs reports the first non-positive entry of values, if any.
func (v *Validator) IDs(field string, values []int) *Validator {
	for index, value := range values {
		if value < 1 {
			v.add(field, fmt.Sprintf("Entry %d must be a positive id", index))
			break
		}
	}
	return v
}

// HTTPURL fails unless value is empty or an absolute http(s) URL.
func (v *Validator) HTTPURL(field, value string) *Validator {
	if value == "" {
		return v
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		v.add(field, "Must be an http or https URL")
	}
	return v
}

// NotFuture fails if value is set and lies after now.
func (v *Validator) NotFuture(field string, value *time.Time, now time.Time) *Validator {
	if value != nil && value.After(now) {
		v.add(field, "Cannot be in the future")
	}
	return v
}

// OneOf fails if value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	}
	return v
}

// Custom adds message when failed is true.
//
//	v.Custom("ttlMinutes", ttl > maxTTL, "Must be between 0 and 43200")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR carrying every failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
