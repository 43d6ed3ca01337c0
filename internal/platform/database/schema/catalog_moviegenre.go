// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMovieGenreTable represents the 'catalog.moviegenre' table
type CatalogMovieGenreTable struct {
	Table   string
	MovieID string
	GenreID string
}

// CatalogMovieGenre is the schema definition for catalog.moviegenre
var CatalogMovieGenre = CatalogMovieGenreTable{
	Table:   "catalog.moviegenre",
	MovieID: "movieid",
	GenreID: "genreid",
}
