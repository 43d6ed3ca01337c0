// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogMovieActorTable represents the 'catalog.movieactor' table
type CatalogMovieActorTable struct {
	Table           string
	ID              string
	MovieID         string
	PersonID        string
	CharacterName   string
	DesignatedOrder string
}

// CatalogMovieActor is the schema definition for catalog.movieactor
var CatalogMovieActor = CatalogMovieActorTable{
	Table:           "catalog.movieactor",
	ID:              "id",
	MovieID:         "movieid",
	PersonID:        "personid",
	CharacterName:   "charactername",
	DesignatedOrder: "designatedorder",
}

// Writable lists the non-key columns in storage order.
func (t CatalogMovieActorTable) Writable() []string {
	return append([]string{t.MovieID, t.PersonID, t.CharacterName, t.DesignatedOrder}, Audit.Columns()...)
}
