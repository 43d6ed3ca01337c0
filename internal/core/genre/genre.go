// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre serves the genre resource.
package genre

import (
	"log/slog"
	"net/url"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/crud"
	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/internal/platform/validate"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
	"github.com/taibuivan/reelbase/pkg/pointer"
)

// Field names and limits used in validation errors.
const (
	FieldName = "name"

	MaxNameLength = 50
)

// Resource describes genres to the generic catalog service.
var Resource = crud.Resource[*catalog.Genre]{
	Name: "Genre",
	New:  func() *catalog.Genre { return &catalog.Genre{} },
	Repository: func(uow *catalog.UnitOfWork) repository.Repository[*catalog.Genre] {
		return uow.Genres()
	},
	Filter:   ParseFilter,
	Validate: Validate,
}

// ParseFilter reads ?name= from the query string.
func ParseFilter(values url.Values) repository.Filter {
	return catalog.GenreFilter{Name: pointer.NonZero(values.Get(catalog.ParamName))}
}

func Validate(genre *catalog.Genre) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, MaxNameLength)
	return validator.Err()
}

// NewHandler wires the genre service and its HTTP handler.
func NewHandler(factory persistence.Factory[*catalog.UnitOfWork], bounds pagination.Bounds, logger *slog.Logger) *crud.Handler[*catalog.Genre] {
	return crud.NewHandler(crud.NewService(factory, Resource, logger), bounds, sec.RoleCurator)
}
