// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denseRange returns a dense array of the given shape filled with
// 0, 1, 2, ... in row-major order.
func denseRange(t *testing.T, sizes ...int) *Dense[int] {
	t.Helper()
	d, err := NewDense[int](mustShape(t, sizes...))
	require.NoError(t, err)
	i := 0
	for _, coords := range d.Space().Coordinates() {
		require.NoError(t, d.Set(i, coords...))
		i++
	}
	return d
}

func TestNewDense(t *testing.T) {
	d, err := NewDense[float64](mustShape(t, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, d.Shape().Sizes())

	v, err := d.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = NewDense[float64](UnknownShape())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewDenseOver(t *testing.T) {
	t.Run("buffer too small", func(t *testing.T) {
		_, err := NewDenseOver[int](mustShape(t, 2, 3), NewSliceBuffer[int](5))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("shares the buffer", func(t *testing.T) {
		buf := SliceBuffer[int]{1, 2, 3, 4}
		d, err := NewDenseOver[int](mustShape(t, 2, 2), buf)
		require.NoError(t, err)

		require.NoError(t, d.Set(99, 1, 0))
		assert.Equal(t, 99, buf.Get(2))
	})
}

func TestDense_GetSet(t *testing.T) {
	d := denseRange(t, 3, 4)

	v, err := d.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, v)

	t.Run("rank mismatch", func(t *testing.T) {
		_, err := d.Get(1)
		assert.ErrorIs(t, err, ErrRankMismatch)
		err = d.Set(0, 1)
		assert.ErrorIs(t, err, ErrRankMismatch)
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := d.Get(3, 0)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		err = d.Set(0, 0, 4)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestDense_Slice(t *testing.T) {
	d := denseRange(t, 3, 4)
	// 0  1  2  3
	// 4  5  6  7
	// 8  9 10 11

	t.Run("point collapses rank", func(t *testing.T) {
		row, err := d.Slice(At(1))
		require.NoError(t, err)
		assert.Equal(t, []int{4}, row.Shape().Sizes())
		assert.Equal(t, []int{4, 5, 6, 7}, row.Values())
	})

	t.Run("all reproduces the array", func(t *testing.T) {
		v, err := d.Slice(All(), All())
		require.NoError(t, err)
		assert.True(t, v.Shape().Equal(d.Shape()))
		assert.True(t, v.Equal(d))
	})

	t.Run("column window", func(t *testing.T) {
		v, err := d.Slice(All(), From(2))
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2}, v.Shape().Sizes())
		assert.Equal(t, []int{2, 3, 6, 7, 10, 11}, v.Values())
	})

	t.Run("negative step reverses", func(t *testing.T) {
		v, err := d.Slice(At(0), Step(-1))
		require.NoError(t, err)
		assert.Equal(t, []int{3, 2, 1, 0}, v.Values())
	})

	t.Run("flip equals negative step", func(t *testing.T) {
		a, err := d.Slice(At(0), Flip())
		require.NoError(t, err)
		b, err := d.Slice(At(0), Step(-1))
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("pick reorders", func(t *testing.T) {
		v, err := d.Slice(Pick(2, 0), At(1))
		require.NoError(t, err)
		assert.Equal(t, []int{9, 1}, v.Values())
	})

	t.Run("slice of a slice", func(t *testing.T) {
		v, err := d.Slice(All(), Step(2)) // columns 0, 2
		require.NoError(t, err)
		w, err := v.Slice(All(), At(1)) // column 2
		require.NoError(t, err)
		assert.Equal(t, []int{2, 6, 10}, w.Values())
	})

	t.Run("view aliases the buffer", func(t *testing.T) {
		d := denseRange(t, 3, 4)
		v, err := d.Slice(At(2))
		require.NoError(t, err)

		require.NoError(t, v.Set(-1, 3))
		got, err := d.Get(2, 3)
		require.NoError(t, err)
		assert.Equal(t, -1, got)
	})

	t.Run("new axis appends a dimension", func(t *testing.T) {
		v, err := d.Slice(Ellipsis(), NewAxis())
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4, 1}, v.Shape().Sizes())

		got, err := v.Get(1, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 6, got)
	})

	t.Run("zero-sized slice", func(t *testing.T) {
		v, err := d.Slice(All(), Span(2, 2))
		require.NoError(t, err)
		assert.Equal(t, []int{3, 0}, v.Shape().Sizes())
		assert.Empty(t, v.Values())
	})
}

func TestDense_ReadOnly(t *testing.T) {
	d := denseRange(t, 2, 2)
	ro := d.ReadOnly()

	assert.False(t, d.IsReadOnly())
	assert.True(t, ro.IsReadOnly())

	err := ro.Set(9, 0, 0)
	assert.ErrorIs(t, err, ErrReadOnly)
	err = ro.CopyFrom(d)
	assert.ErrorIs(t, err, ErrReadOnly)

	// Read-only status carries over to slices.
	v, err := ro.Slice(At(0))
	require.NoError(t, err)
	err = v.Set(9, 0)
	assert.ErrorIs(t, err, ErrReadOnly)

	// The original stays writable and the view still reads through.
	require.NoError(t, d.Set(7, 0, 0))
	got, err := ro.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestDense_Equal(t *testing.T) {
	a := denseRange(t, 2, 3)
	b := denseRange(t, 2, 3)

	assert.True(t, a.Equal(b))

	require.NoError(t, b.Set(-1, 1, 1))
	assert.False(t, a.Equal(b))

	t.Run("shape mismatch", func(t *testing.T) {
		c := denseRange(t, 3, 2)
		assert.False(t, a.Equal(c))
	})

	t.Run("segmented fallback", func(t *testing.T) {
		d := denseRange(t, 1, 6)
		flipped, err := d.Slice(All(), Flip())
		require.NoError(t, err)
		reversed, err := d.Slice(All(), Step(-1))
		require.NoError(t, err)
		assert.True(t, flipped.Equal(reversed))
		assert.False(t, flipped.Equal(d))
	})
}

func TestDense_CopyFrom(t *testing.T) {
	t.Run("contiguous fast path", func(t *testing.T) {
		src := denseRange(t, 2, 3)
		dst, err := NewDense[int](mustShape(t, 2, 3))
		require.NoError(t, err)

		require.NoError(t, dst.CopyFrom(src))
		assert.True(t, dst.Equal(src))
	})

	t.Run("segmented source", func(t *testing.T) {
		src := denseRange(t, 4)
		flipped, err := src.Slice(Flip())
		require.NoError(t, err)

		dst, err := NewDense[int](mustShape(t, 4))
		require.NoError(t, err)
		require.NoError(t, dst.CopyFrom(flipped))
		assert.Equal(t, []int{3, 2, 1, 0}, dst.Values())
	})

	t.Run("segmented destination", func(t *testing.T) {
		dst := denseRange(t, 3, 4)
		window, err := dst.Slice(All(), From(2))
		require.NoError(t, err)

		src, err := NewDense[int](mustShape(t, 3, 2))
		require.NoError(t, err)
		require.NoError(t, window.CopyFrom(src))

		assert.Equal(t, []int{0, 1, 0, 0, 4, 5, 0, 0, 8, 9, 0, 0}, dst.Values())
	})

	t.Run("overlapping views", func(t *testing.T) {
		d := denseRange(t, 4)
		flipped, err := d.Slice(Flip())
		require.NoError(t, err)

		require.NoError(t, d.CopyFrom(flipped))
		assert.Equal(t, []int{3, 2, 1, 0}, d.Values())
	})

	t.Run("shape mismatch", func(t *testing.T) {
		dst := denseRange(t, 2, 3)
		src := denseRange(t, 3, 2)
		assert.ErrorIs(t, dst.CopyFrom(src), ErrShapeMismatch)
	})
}
