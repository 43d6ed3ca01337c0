// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogPersonTable represents the 'catalog.person' table
type CatalogPersonTable struct {
	Table       string
	ID          string
	Name        string
	Biography   string
	DateOfBirth string
	Picture     string
}

// CatalogPerson is the schema definition for catalog.person
var CatalogPerson = CatalogPersonTable{
	Table:       "catalog.person",
	ID:          "id",
	Name:        "name",
	Biography:   "biography",
	DateOfBirth: "dateofbirth",
	Picture:     "picture",
}

// Writable lists the non-key columns in storage order.
func (t CatalogPersonTable) Writable() []string {
	return append([]string{t.Name, t.Biography, t.DateOfBirth, t.Picture}, Audit.Columns()...)
}
