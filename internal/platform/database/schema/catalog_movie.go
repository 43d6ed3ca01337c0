// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMovieTable represents the 'catalog.movie' table
type CatalogMovieTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Summary     string
	Trailer     string
	InTheaters  string
	ReleaseDate string
	Poster      string
}

// CatalogMovie is the schema definition for catalog.movie
var CatalogMovie = CatalogMovieTable{
	Table:       "catalog.movie",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Summary:     "summary",
	Trailer:     "trailer",
	InTheaters:  "intheaters",
	ReleaseDate: "releasedate",
	Poster:      "poster",
}

// Writable lists the non-key columns in storage order.
func (t CatalogMovieTable) Writable() []string {
	return append([]string{
		t.Title, t.Slug, t.Summary, t.Trailer, t.InTheaters, t.ReleaseDate, t.Poster,
	}, Audit.Columns()...)
}
