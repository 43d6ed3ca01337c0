// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field rule.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Drama", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("name", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "name", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_HTTPURL checks the trailer and poster link rule.
*/
func TestValidator_HTTPURL(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"", true},
		{"https://cdn.reelbase.app/posters/1.jpg", true},
		{"http://example.com/trailer", true},
		{"ftp://example.com/trailer", false},
		{"/posters/1.jpg", false},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.HTTPURL("poster", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_IDs verifies only the first bad id is reported.
*/
func TestValidator_IDs(t *testing.T) {
	v := &validate.Validator{}
	v.IDs("genreIds", []int{2, 0, -1}).ID("movieId", 4)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "Entry 1 must be a positive id", ae.Details[0].Message)
}

/*
TestValidator_NotFuture verifies birth dates are compared with the given clock.
*/
func TestValidator_NotFuture(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(-30, 0, 0)
	future := now.AddDate(0, 0, 1)

	assert.False(t, (&validate.Validator{}).NotFuture("dateOfBirth", nil, now).HasErrors())
	assert.False(t, (&validate.Validator{}).NotFuture("dateOfBirth", &past, now).HasErrors())
	assert.True(t, (&validate.Validator{}).NotFuture("dateOfBirth", &future, now).HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation across rules.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").
		RequiredTime("releaseDate", time.Time{}).
		Range("rate", 6, 1, 5).
		OneOf("role", "owner", "admin", "curator", "member").
		MaxLen("character", "Lead", 10).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 4)
	assert.Equal(t, "Must be between 1 and 5", ae.Details[2].Message)
	assert.Equal(t, "Must be one of: admin, curator, member", ae.Details[3].Message)
}
