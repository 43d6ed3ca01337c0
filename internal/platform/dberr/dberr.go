// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies PostgreSQL failures raised while a unit of work
// commits.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/reelbase/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes the catalog cares about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Wrap maps constraint violations to client errors and everything else to
// [apperr.Internal]. action prefixes the logged cause.
// Absent rows never reach Wrap; repositories report them as nil results.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	cause := fmt.Errorf("%s: %w", action, err)

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict("Resource already exists").WithCause(cause)
		case codeForeignKeyViolation:
			return apperr.Unprocessable("Referenced resource does not exist").WithCause(cause)
		case codeCheckViolation:
			return apperr.ValidationError("Value violates a storage constraint").WithCause(cause)
		}
	}

	return apperr.Internal(cause)
}
