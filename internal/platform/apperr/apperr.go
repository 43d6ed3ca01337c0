// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by the catalog services and
the HTTP layer.

Services return an [*AppError] for every failure a client can act on: an
unknown id, a filter without criteria, a payload that fails validation, or a
write that lost a race. Anything else is wrapped by [Internal] and surfaces
as a 500 whose cause is logged but never serialized.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Error codes carried in the "code" member of every error body.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidFilter      = "INVALID_FILTER"
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnprocessable      = "UNPROCESSABLE"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is a failure with a client-safe message and its HTTP status.
// Cause is for server logs only.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one rejected payload member.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e that records cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	copied := *e
	copied.Cause = cause
	return &copied
}

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports an absent entity, e.g. NotFound("Movie") is "Movie not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, msg)
}

// Conflict covers duplicate keys and writes against rows that vanished
// after they were loaded.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, CodeConflict, msg)
}

// ValidationError carries every rejected field at once.
func ValidationError(msg string, details ...FieldError) *AppError {
	e := newError(http.StatusBadRequest, CodeValidation, msg)
	e.Details = details
	return e
}

// InvalidFilter rejects a filter query without any criteria. A filter that
// matches nothing is not an error.
func InvalidFilter(msg string) *AppError {
	return newError(http.StatusBadRequest, CodeInvalidFilter, msg)
}

// BadRequest covers malformed input such as a non-numeric id.
func BadRequest(msg string) *AppError {
	return newError(http.StatusBadRequest, CodeBadRequest, msg)
}

// Unprocessable reports a well-formed payload that references missing rows.
func Unprocessable(msg string) *AppError {
	return newError(http.StatusUnprocessableEntity, CodeUnprocessable, msg)
}

func TooManyRequests() *AppError {
	return newError(http.StatusTooManyRequests, CodeTooManyRequests, "Rate limit exceeded")
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred").WithCause(cause)
}

// ServiceUnavailable reports a missing capability or an unhealthy dependency.
func ServiceUnavailable(msg string) *AppError {
	return newError(http.StatusServiceUnavailable, CodeServiceUnavailable, msg)
}

// # Helpers

func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
