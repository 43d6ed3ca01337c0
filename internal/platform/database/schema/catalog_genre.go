// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogGenreTable represents the 'catalog.genre' table
type CatalogGenreTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogGenreTable{
	Table: "catalog.genre",
	ID:    "id",
	Name:  "name",
}

// Writable lists the non-key columns in storage order.
func (t CatalogGenreTable) Writable() []string {
	return append([]string{t.Name}, Audit.Columns()...)
}
