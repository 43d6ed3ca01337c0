// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package repository

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Condition is one ANDed predicate of a filter, keyed by its query parameter name.
type Condition struct {
	Param string
	Value any
}

// Filter is an optional-field query object. Only the fields that are set
// contribute a [Condition].
type Filter interface {
	Conditions() []Condition
}

// RequireConditions returns the conditions of filter, failing with
// [ErrInvalidFilter] when the filter is nil or has no field set.
func RequireConditions(filter Filter) ([]Condition, error) {
	if filter == nil {
		return nil, ErrInvalidFilter
	}

	conditions := filter.Conditions()
	if len(conditions) == 0 {
		return nil, ErrInvalidFilter
	}

	return conditions, nil
}

// Values renders conditions as URL query parameters.
func Values(conditions []Condition) url.Values {
	values := url.Values{}
	for _, condition := range conditions {
		values.Set(condition.Param, FormatValue(condition.Value))
	}
	return values
}

// FormatValue renders a condition value the way the HTTP layer parses it back.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case bool:
		return strconv.FormatBool(typed)
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return fmt.Sprint(typed)
	}
}
