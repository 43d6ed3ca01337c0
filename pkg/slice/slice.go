// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic slice helpers the standard [slices]
// package lacks.
package slice

// MapErr converts every element with transform and stops at the first
// error. A nil input stays nil.
func MapErr[T, U any](input []T, transform func(T) (U, error)) ([]U, error) {
	if input == nil {
		return nil, nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		mapped, err := transform(v)
		if err != nil {
			return nil, err
		}
		result[i] = mapped
	}
	return result, nil
}
