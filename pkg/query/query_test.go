// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelbase/pkg/query"
)

/*
TestInts verifies list parsing keeps order and rejects bad items.
*/
func TestInts(t *testing.T) {
	values, err := query.Ints(" 5, 2 ,,9")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 2, 9}, values)

	values, err = query.Ints("")
	require.NoError(t, err)
	assert.Nil(t, values)

	_, err = query.Ints("2,drama")
	assert.EqualError(t, err, `"drama" is not a number`)
}
