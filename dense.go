// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import "fmt"

// Dense is an N-dimensional array over a flat Buffer, addressed
// through a Space.
//
// Slicing produces views: a view shares the backing buffer of the
// array it was sliced from, so mutations through any view are visible
// through all others and the original. Use ReadOnly to hand out a view
// that rejects writes.
type Dense[T comparable] struct {
	buf      Buffer[T]
	space    *Space
	offset   int
	readOnly bool
}

// NewDense returns a dense array of the given shape over a freshly
// allocated SliceBuffer of zero values.
func NewDense[T comparable](shape Shape) (*Dense[T], error) {
	space, err := NewSpace(shape)
	if err != nil {
		return nil, err
	}
	return &Dense[T]{buf: NewSliceBuffer[T](space.Elements()), space: space}, nil
}

// NewDenseOver returns a dense array of the given shape reading and
// writing the given buffer, which must hold at least as many elements
// as the shape describes. The buffer is used directly, not copied.
func NewDenseOver[T comparable](shape Shape, buf Buffer[T]) (*Dense[T], error) {
	space, err := NewSpace(shape)
	if err != nil {
		return nil, err
	}
	if n := space.Elements(); buf.Len() < n {
		return nil, fmt.Errorf("%w: shape %s needs %d elements, buffer holds %d", ErrInvalidArgument, shape, n, buf.Len())
	}
	return &Dense[T]{buf: buf, space: space}, nil
}

// Shape returns the shape of the array.
func (d *Dense[T]) Shape() Shape {
	return d.space.Shape()
}

// Space returns the dimensional space the array resolves coordinates
// through.
func (d *Dense[T]) Space() *Space {
	return d.space
}

// Buffer returns the backing buffer (not a copy).
func (d *Dense[T]) Buffer() Buffer[T] {
	return d.buf
}

// IsReadOnly reports whether writes to the array are rejected.
func (d *Dense[T]) IsReadOnly() bool {
	return d.readOnly
}

// ReadOnly returns a view of the array that rejects any mutation with
// ErrReadOnly. The view still aliases the same backing buffer.
func (d *Dense[T]) ReadOnly() *Dense[T] {
	if d.readOnly {
		return d
	}
	ro := *d
	ro.readOnly = true
	return &ro
}

// Get returns the element at the given coordinates.
func (d *Dense[T]) Get(coords ...int) (T, error) {
	var zero T
	if len(coords) != d.space.Rank() {
		return zero, fmt.Errorf("%w: got %d coordinates for a rank-%d array", ErrRankMismatch, len(coords), d.space.Rank())
	}
	pos, err := d.space.PositionOf(coords...)
	if err != nil {
		return zero, err
	}
	return d.buf.Get(d.offset + pos), nil
}

// Set stores the element at the given coordinates.
func (d *Dense[T]) Set(value T, coords ...int) error {
	if d.readOnly {
		return fmt.Errorf("%w: cannot set on a read-only dense array", ErrReadOnly)
	}
	if len(coords) != d.space.Rank() {
		return fmt.Errorf("%w: got %d coordinates for a rank-%d array", ErrRankMismatch, len(coords), d.space.Rank())
	}
	pos, err := d.space.PositionOf(coords...)
	if err != nil {
		return err
	}
	d.buf.Set(value, d.offset+pos)
	return nil
}

// Slice resolves the index descriptors against the array's space and
// returns a view over the same buffer. Read-only status carries over
// to the view.
func (d *Dense[T]) Slice(indexes ...Index) (*Dense[T], error) {
	space, offset, err := d.space.MapTo(indexes...)
	if err != nil {
		return nil, err
	}
	return &Dense[T]{
		buf:      d.buf,
		space:    space,
		offset:   d.offset + offset,
		readOnly: d.readOnly,
	}, nil
}

// Values returns a row-major snapshot of all elements.
func (d *Dense[T]) Values() []T {
	out := make([]T, 0, d.space.Elements())
	for pos := range d.space.Positions() {
		out = append(out, d.buf.Get(d.offset+pos))
	}
	return out
}

// Equal reports whether two dense arrays have equal shapes and equal
// elements at every coordinate. When neither side is segmented the
// comparison runs over contiguous buffer positions; otherwise it falls
// back to coordinate-by-coordinate traversal.
func (d *Dense[T]) Equal(o *Dense[T]) bool {
	if !d.Shape().Equal(o.Shape()) {
		return false
	}
	if !d.space.Segmented() && !o.space.Segmented() {
		n := d.space.Elements()
		for i := 0; i < n; i++ {
			if d.buf.Get(d.offset+i) != o.buf.Get(o.offset+i) {
				return false
			}
		}
		return true
	}
	for pos, coords := range d.space.Coordinates() {
		oPos, _ := o.space.PositionOf(coords...) // same shape, coords in range
		if d.buf.Get(d.offset+pos) != o.buf.Get(o.offset+oPos) {
			return false
		}
	}
	return true
}

// CopyFrom copies every element of src into the array. The shapes must
// be identical, not merely compatible.
func (d *Dense[T]) CopyFrom(src *Dense[T]) error {
	if d.readOnly {
		return fmt.Errorf("%w: cannot copy into a read-only dense array", ErrReadOnly)
	}
	if !d.Shape().Equal(src.Shape()) {
		return fmt.Errorf("%w: cannot copy shape %s into shape %s", ErrShapeMismatch, src.Shape(), d.Shape())
	}
	if !d.space.Segmented() && !src.space.Segmented() {
		tmp := make([]T, d.space.Elements())
		src.buf.Read(tmp, src.offset)
		d.buf.Write(tmp, d.offset)
		return nil
	}
	// Snapshot first: src may alias the destination buffer.
	tmp := src.Values()
	i := 0
	for pos := range d.space.Positions() {
		d.buf.Set(tmp[i], d.offset+pos)
		i++
	}
	return nil
}
