// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogRatingTable represents the 'catalog.rating' table
type CatalogRatingTable struct {
	Table   string
	ID      string
	MovieID string
	UserID  string
	Rate    string
}

// CatalogRating is the schema definition for catalog.rating
var CatalogRating = CatalogRatingTable{
	Table:   "catalog.rating",
	ID:      "id",
	MovieID: "movieid",
	UserID:  "userid",
	Rate:    "rate",
}

// Writable lists the non-key columns in storage order.
func (t CatalogRatingTable) Writable() []string {
	return append([]string{t.MovieID, t.UserID, t.Rate}, Audit.Columns()...)
}
