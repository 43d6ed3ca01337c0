// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds the optional fields of filters and payloads.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// NonZero returns nil for the zero value of T and a pointer to v otherwise.
// An empty query parameter thus becomes an absent filter criterion.
func NonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
