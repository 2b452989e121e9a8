// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ Buffer[int] = SliceBuffer[int]{}

func TestSliceBuffer(t *testing.T) {
	t.Run("get and set", func(t *testing.T) {
		b := NewSliceBuffer[int](4)
		assert.Equal(t, 4, b.Len())
		assert.Equal(t, 0, b.Get(2))

		b.Set(42, 2)
		assert.Equal(t, 42, b.Get(2))
	})

	t.Run("bulk read and write", func(t *testing.T) {
		b := SliceBuffer[int]{10, 20, 30, 40}

		dst := make([]int, 2)
		n := b.Read(dst, 1)
		assert.Equal(t, 2, n)
		assert.Equal(t, []int{20, 30}, dst)

		n = b.Write([]int{7, 8}, 2)
		assert.Equal(t, 2, n)
		assert.Equal(t, SliceBuffer[int]{10, 20, 7, 8}, b)
	})

	t.Run("read past the end is bounded", func(t *testing.T) {
		b := SliceBuffer[int]{1, 2}
		dst := make([]int, 5)
		assert.Equal(t, 1, b.Read(dst, 1))
	})

	t.Run("offset views alias the backing array", func(t *testing.T) {
		b := SliceBuffer[int]{1, 2, 3, 4}
		v := b.Offset(2)
		assert.Equal(t, 2, v.Len())
		assert.Equal(t, 3, v.Get(0))

		v.Set(99, 0)
		assert.Equal(t, 99, b.Get(2))
	})
}
