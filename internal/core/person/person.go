// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package person serves the people credited in movie casts.
package person

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/core/crud"
	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/sec"
	"github.com/taibuivan/reelbase/internal/platform/validate"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
	"github.com/taibuivan/reelbase/pkg/pointer"
)

const (
	FieldName        = "name"
	FieldBiography   = "biography"
	FieldDateOfBirth = "dateOfBirth"
	FieldPicture     = "picture"

	MaxNameLength      = 120
	MaxBiographyLength = 4000
)

// Resource describes people to the generic catalog service.
var Resource = crud.Resource[*catalog.Person]{
	Name: "Person",
	New:  func() *catalog.Person { return &catalog.Person{} },
	Repository: func(uow *catalog.UnitOfWork) repository.Repository[*catalog.Person] {
		return uow.People()
	},
	Filter:   ParseFilter,
	Validate: Validate,
}

// ParseFilter reads ?name= from the query string.
func ParseFilter(values url.Values) repository.Filter {
	return catalog.PersonFilter{Name: pointer.NonZero(values.Get(catalog.ParamName))}
}

func Validate(person *catalog.Person) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, person.Name).MaxLen(FieldName, person.Name, MaxNameLength)
	validator.MaxLen(FieldBiography, person.Biography, MaxBiographyLength).HTTPURL(FieldPicture, person.Picture)
	validator.NotFuture(FieldDateOfBirth, person.DateOfBirth, time.Now())
	return validator.Err()
}

// NewHandler wires the person service and its HTTP handler.
func NewHandler(factory persistence.Factory[*catalog.UnitOfWork], bounds pagination.Bounds, logger *slog.Logger) *crud.Handler[*catalog.Person] {
	return crud.NewHandler(crud.NewService(factory, Resource, logger), bounds, sec.RoleCurator)
}
