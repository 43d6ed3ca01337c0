// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path ids, JSON payloads and the caller from
// incoming catalog requests.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
	"github.com/taibuivan/reelbase/internal/platform/ctxutil"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/internal/platform/validate"
)

// MaxBodyBytes caps a decoded payload. A movie graph with its cast stays
// well below it.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes exactly one JSON value from the body into target.
// An empty, oversized or malformed body is [validate.ErrInvalidJSON].
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	if request.Body == nil || request.Body == http.NoBody {
		return validate.ErrInvalidJSON
	}

	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, MaxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.BadRequest("Request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes")
		}
		return validate.ErrInvalidJSON
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// IntID parses the path parameter name as a primary key.
func IntID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.BadRequest("Invalid identifier: " + raw)
	}
	return id, nil
}

// Claims returns nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims fails with 401 for anonymous requests.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the caller's subject, the key ratings are stored under.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
