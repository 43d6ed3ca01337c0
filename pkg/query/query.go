// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses comma separated lists such as "--genres 2,5".
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Split returns the trimmed, non-empty items of a comma separated value.
func Split(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// Ints parses a comma separated list of integers. Unlike the filter
// parsers, a malformed item is an error.
func Ints(raw string) ([]int, error) {
	items := Split(raw)
	if len(items) == 0 {
		return nil, nil
	}

	values := make([]int, 0, len(items))
	for _, item := range items {
		value, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", item)
		}
		values = append(values, value)
	}
	return values, nil
}
