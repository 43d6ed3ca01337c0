// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert parses query string and path values into the optional fields
of the catalog filters.

Malformed input never fails a request here. A value that does not parse is
treated as absent, so the filter simply has one criterion fewer.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt returns 0 for empty or malformed input.
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD returns def for empty or malformed input.
func ToIntD(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// PositiveInt returns nil unless s is an integer above zero. Catalog keys
// start at 1, so zero and negatives are never valid ids.
func PositiveInt(s string) *int {
	v := ToInt(s)
	if v <= 0 {
		return nil
	}
	return &v
}

// Bool returns nil unless s parses with [strconv.ParseBool].
func Bool(s string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
