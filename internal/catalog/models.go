// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"

	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/database/schema"
	"github.com/taibuivan/reelbase/pkg/slug"
)

// # Audit Mapping

func auditFields(b *Base) []any {
	return []any{&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy, &b.IsDeleted}
}

func auditValues(b *Base) []any {
	return []any{b.CreatedAt, b.CreatedBy, b.UpdatedAt, b.UpdatedBy, b.IsDeleted}
}

func contains(column string) string {
	return fmt.Sprintf("%s ILIKE '%%' || ? || '%%'", column)
}

// # Models

// GenreModel maps [Genre] to catalog.genre.
var GenreModel = &persistence.Model[*Genre]{
	Table:        schema.CatalogGenre.Table,
	Keys:         []string{schema.CatalogGenre.ID},
	GeneratedKey: true,
	Columns:      schema.CatalogGenre.Writable(),
	SoftDelete:   schema.Audit.IsDeleted,
	Filters: map[string]string{
		ParamName: contains(schema.CatalogGenre.Name),
	},
	New: func() *Genre { return &Genre{} },
	Fields: func(g *Genre) []any {
		return append([]any{&g.ID, &g.Name}, auditFields(&g.Base)...)
	},
	Values: func(g *Genre) []any {
		return append([]any{g.Name}, auditValues(&g.Base)...)
	},
	KeyValues: func(g *Genre) []any { return []any{g.ID} },
	SetKey:    func(g *Genre, id int) { g.ID = id },
	Assign: func(dst, src *Genre) {
		dst.Name = src.Name
	},
}

// PersonModel maps [Person] to catalog.person.
var PersonModel = &persistence.Model[*Person]{
	Table:        schema.CatalogPerson.Table,
	Keys:         []string{schema.CatalogPerson.ID},
	GeneratedKey: true,
	Columns:      schema.CatalogPerson.Writable(),
	SoftDelete:   schema.Audit.IsDeleted,
	Filters: map[string]string{
		ParamName: contains(schema.CatalogPerson.Name),
	},
	New: func() *Person { return &Person{} },
	Fields: func(p *Person) []any {
		return append([]any{&p.ID, &p.Name, &p.Biography, &p.DateOfBirth, &p.Picture}, auditFields(&p.Base)...)
	},
	Values: func(p *Person) []any {
		return append([]any{p.Name, p.Biography, p.DateOfBirth, p.Picture}, auditValues(&p.Base)...)
	},
	KeyValues: func(p *Person) []any { return []any{p.ID} },
	SetKey:    func(p *Person, id int) { p.ID = id },
	Assign: func(dst, src *Person) {
		dst.Name = src.Name
		dst.Biography = src.Biography
		dst.DateOfBirth = src.DateOfBirth
		dst.Picture = src.Picture
	},
}

// MovieModel maps the scalar fields of [Movie] to catalog.movie.
var MovieModel = &persistence.Model[*Movie]{
	Table:        schema.CatalogMovie.Table,
	Keys:         []string{schema.CatalogMovie.ID},
	GeneratedKey: true,
	Columns:      schema.CatalogMovie.Writable(),
	SoftDelete:   schema.Audit.IsDeleted,
	Filters: map[string]string{
		ParamTitle: contains(schema.CatalogMovie.Title),
		ParamGenreID: fmt.Sprintf("%s IN (SELECT %s FROM %s WHERE %s = ?)",
			schema.CatalogMovie.ID, schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.Table, schema.CatalogMovieGenre.GenreID),
		ParamInTheaters:       schema.CatalogMovie.InTheaters + " = ?",
		ParamUpcomingReleases: fmt.Sprintf("(%s > CURRENT_DATE) = ?", schema.CatalogMovie.ReleaseDate),
	},
	New: func() *Movie { return &Movie{} },
	Fields: func(m *Movie) []any {
		return append([]any{
			&m.ID, &m.Title, &m.Slug, &m.Summary, &m.Trailer, &m.InTheaters, &m.ReleaseDate, &m.Poster,
		}, auditFields(&m.Base)...)
	},
	Values: func(m *Movie) []any {
		return append([]any{
			m.Title, m.Slug, m.Summary, m.Trailer, m.InTheaters, m.ReleaseDate, m.Poster,
		}, auditValues(&m.Base)...)
	},
	KeyValues: func(m *Movie) []any { return []any{m.ID} },
	SetKey:    func(m *Movie, id int) { m.ID = id },
	Assign: func(dst, src *Movie) {
		dst.Title = src.Title
		dst.Summary = src.Summary
		dst.Trailer = src.Trailer
		dst.InTheaters = src.InTheaters
		dst.ReleaseDate = src.ReleaseDate
		dst.Poster = src.Poster
	},
	BeforeSave: func(m *Movie) {
		m.Slug = slug.From(m.Title)
	},
}

// MovieActorModel maps [MovieActor] to catalog.movieactor.
var MovieActorModel = &persistence.Model[*MovieActor]{
	Table:        schema.CatalogMovieActor.Table,
	Keys:         []string{schema.CatalogMovieActor.ID},
	GeneratedKey: true,
	Columns:      schema.CatalogMovieActor.Writable(),
	SoftDelete:   schema.Audit.IsDeleted,
	Filters: map[string]string{
		ParamMovieID: schema.CatalogMovieActor.MovieID + " = ?",
	},
	New: func() *MovieActor { return &MovieActor{} },
	Fields: func(a *MovieActor) []any {
		return append([]any{
			&a.ID, &a.MovieID, &a.PersonID, &a.CharacterName, &a.DesignatedOrder,
		}, auditFields(&a.Base)...)
	},
	Values: func(a *MovieActor) []any {
		return append([]any{
			a.MovieID, a.PersonID, a.CharacterName, a.DesignatedOrder,
		}, auditValues(&a.Base)...)
	},
	KeyValues: func(a *MovieActor) []any { return []any{a.ID} },
	SetKey:    func(a *MovieActor, id int) { a.ID = id },
	Assign: func(dst, src *MovieActor) {
		dst.CharacterName = src.CharacterName
		dst.DesignatedOrder = src.DesignatedOrder
	},
	BeforeSave: (*MovieActor).resolve,
}

// MovieGenreModel maps [MovieGenre] to catalog.moviegenre.
var MovieGenreModel = &persistence.Model[*MovieGenre]{
	Table: schema.CatalogMovieGenre.Table,
	Keys:  []string{schema.CatalogMovieGenre.MovieID, schema.CatalogMovieGenre.GenreID},
	New:   func() *MovieGenre { return &MovieGenre{} },
	Fields: func(l *MovieGenre) []any {
		return []any{&l.MovieID, &l.GenreID}
	},
	Values: func(*MovieGenre) []any { return nil },
	KeyValues: func(l *MovieGenre) []any {
		l.resolve()
		return []any{l.MovieID, l.GenreID}
	},
	Assign:     func(*MovieGenre, *MovieGenre) {},
	BeforeSave: (*MovieGenre).resolve,
}

// RatingModel maps [Rating] to catalog.rating.
var RatingModel = &persistence.Model[*Rating]{
	Table:        schema.CatalogRating.Table,
	Keys:         []string{schema.CatalogRating.ID},
	GeneratedKey: true,
	Columns:      schema.CatalogRating.Writable(),
	SoftDelete:   schema.Audit.IsDeleted,
	Filters: map[string]string{
		ParamMovieID: schema.CatalogRating.MovieID + " = ?",
		ParamUserID:  schema.CatalogRating.UserID + " = ?",
	},
	New: func() *Rating { return &Rating{} },
	Fields: func(r *Rating) []any {
		return append([]any{&r.ID, &r.MovieID, &r.UserID, &r.Rate}, auditFields(&r.Base)...)
	},
	Values: func(r *Rating) []any {
		return append([]any{r.MovieID, r.UserID, r.Rate}, auditValues(&r.Base)...)
	},
	KeyValues: func(r *Rating) []any { return []any{r.ID} },
	SetKey:    func(r *Rating, id int) { r.ID = id },
	Assign: func(dst, src *Rating) {
		dst.Rate = src.Rate
	},
}
