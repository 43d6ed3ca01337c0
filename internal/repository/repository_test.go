// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/internal/repository"
)

type widget struct{ id int }

func (w *widget) GetID() int   { return w.id }
func (w *widget) SetID(id int) { w.id = id }

type widgetFilter struct {
	Name   *string
	Active *bool
}

func (f widgetFilter) Conditions() []repository.Condition {
	var conditions []repository.Condition
	if f.Name != nil {
		conditions = append(conditions, repository.Condition{Param: "name", Value: *f.Name})
	}
	if f.Active != nil {
		conditions = append(conditions, repository.Condition{Param: "active", Value: *f.Active})
	}
	return conditions
}

/*
TestIsNil verifies typed nil pointers are detected.
*/
func TestIsNil(t *testing.T) {
	var missing *widget
	assert.True(t, repository.IsNil(missing))
	assert.False(t, repository.IsNil(&widget{id: 1}))
}

/*
TestRequireConditions verifies an empty filter is a caller error.
*/
func TestRequireConditions(t *testing.T) {
	_, err := repository.RequireConditions(widgetFilter{})
	assert.ErrorIs(t, err, repository.ErrInvalidFilter)

	_, err = repository.RequireConditions(nil)
	assert.ErrorIs(t, err, repository.ErrInvalidFilter)

	name := "bolt"
	active := true
	conditions, err := repository.RequireConditions(widgetFilter{Name: &name, Active: &active})
	require.NoError(t, err)
	assert.Len(t, conditions, 2)

	assert.Equal(t, "active=true&name=bolt", repository.Values(conditions).Encode())
}
