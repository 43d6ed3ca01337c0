// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/taibuivan/reelbase/internal/persistence"
	"github.com/taibuivan/reelbase/internal/platform/database/schema"
)

// RatingRepository is the generic rating repository plus per-user lookups.
type RatingRepository struct {
	*persistence.Repository[*Rating]
	session *persistence.Session
}

// NewRatingRepository wraps the generic rating repository.
func NewRatingRepository(ratings *persistence.Repository[*Rating]) *RatingRepository {
	return &RatingRepository{Repository: ratings, session: ratings.Session()}
}

// FindByUser returns the tracked rating userID gave movieID, or nil.
func (r *RatingRepository) FindByUser(ctx context.Context, movieID int, userID string) (*Rating, error) {
	ratings, err := persistence.Find(ctx, r.session, RatingModel, persistence.Query{
		Where: []string{schema.CatalogRating.MovieID + " = ?", schema.CatalogRating.UserID + " = ?"},
		Args:  []any{movieID, userID},
		Track: true,
	})
	if err != nil || len(ratings) == 0 {
		return nil, err
	}
	return ratings[0], nil
}

// Average returns the mean rate of movieID, or 0 when it has no ratings.
func (r *RatingRepository) Average(ctx context.Context, movieID int) (float64, error) {
	statement := fmt.Sprintf("SELECT COALESCE(AVG(%s), 0)::float8 FROM %s WHERE %s = $1 AND %s = false",
		schema.CatalogRating.Rate, schema.CatalogRating.Table, schema.CatalogRating.MovieID, schema.Audit.IsDeleted)

	var average float64
	if err := r.session.DB().QueryRow(ctx, statement, movieID).Scan(&average); err != nil {
		return 0, fmt.Errorf("catalog: average rating of movie %d: %w", movieID, err)
	}
	return average, nil
}

// Upsert records rate as userID's score for movieID, replacing a previous one.
func (r *RatingRepository) Upsert(ctx context.Context, movieID int, userID string, rate int) (*Rating, error) {
	existing, err := r.FindByUser(ctx, movieID, userID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return r.Update(ctx, existing.ID, &Rating{Rate: rate})
	}
	return r.Add(ctx, &Rating{MovieID: movieID, UserID: userID, Rate: rate})
}
