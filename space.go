// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"
)

// Space translates between N-dimensional coordinates and flat positions
// of a row-major buffer.
//
// For each dimension d it keeps the dimension size and the element
// stride: how many flat positions one step along d skips. For a space
// built directly from a Shape, the innermost stride is 1 and
// position(coords) is the dot product of coordinates and strides.
//
// Spaces produced by slicing may carry negative strides (reversed
// ranges) or per-dimension explicit position lists (arbitrary
// reorderings); see Segmented.
//
// A Space is immutable after construction.
type Space struct {
	sizes   []int
	strides []int

	// remap holds, per dimension, an explicit list of source positions
	// standing in for the plain 0..size-1 coordinate progression.
	// A nil entry (or a nil slice) means the dimension is affine.
	remap [][]int

	segmented bool
}

// NewSpace derives a Space from a fully-known Shape, computing
// row-major strides.
func NewSpace(shape Shape) (*Space, error) {
	if !shape.FullyKnown() {
		return nil, fmt.Errorf("%w: cannot derive a space from shape %s with unknown dimensions", ErrInvalidArgument, shape)
	}
	if _, err := shape.Elements(); err != nil {
		return nil, err
	}
	sizes := shape.Sizes()
	strides := make([]int, len(sizes))
	acc := 1
	for d := len(sizes) - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= sizes[d]
	}
	return &Space{sizes: sizes, strides: strides}, nil
}

// newSpaceRaw assembles a Space from explicit per-dimension tables,
// deciding the segmented flag from their layout. Used by the slicing
// resolver and From.
func newSpaceRaw(sizes, strides []int, remap [][]int) *Space {
	sp := &Space{sizes: sizes, strides: strides, remap: remap}
	sp.segmented = !sp.contiguous()
	return sp
}

// contiguous reports whether positions of the space are exactly the
// row-major packing 0..Elements()-1: no remapped dimensions and every
// stride equal to the product of the sizes to its right.
func (sp *Space) contiguous() bool {
	for d := range sp.remap {
		if sp.remap[d] != nil {
			return false
		}
	}
	acc := 1
	for d := len(sp.sizes) - 1; d >= 0; d-- {
		if sp.sizes[d] > 1 && sp.strides[d] != acc {
			return false
		}
		acc *= sp.sizes[d]
	}
	return true
}

// Rank returns the number of dimensions of the space.
func (sp *Space) Rank() int {
	return len(sp.sizes)
}

// DimSize returns the number of elements along dimension d.
func (sp *Space) DimSize(d int) int {
	return sp.sizes[d]
}

// Stride returns the element stride of dimension d.
func (sp *Space) Stride(d int) int {
	return sp.strides[d]
}

// Elements returns the total number of addressable positions
// (1 for a rank-0 space).
func (sp *Space) Elements() int {
	n := 1
	for _, v := range sp.sizes {
		n *= v
	}
	return n
}

// Shape returns the shape described by the space's dimension sizes.
func (sp *Space) Shape() Shape {
	sh, _ := NewShape(sp.sizes...) // sizes are always valid
	return sh
}

// Segmented reports whether the space's positions are not packed
// contiguously in row-major order, as produced by strided, reversed or
// reordered slices. Bulk operations relying on contiguous buffer runs
// must fall back to coordinate-by-coordinate traversal on a segmented
// space.
func (sp *Space) Segmented() bool {
	return sp.segmented
}

// mapIndex resolves a logical coordinate along dimension d to the
// source index the stride multiplies.
func (sp *Space) mapIndex(d, c int) int {
	if sp.remap == nil || sp.remap[d] == nil {
		return c
	}
	return sp.remap[d][c]
}

// PositionOf translates a coordinate vector to a flat position,
// relative to the space's position 0.
//
// A partial coordinate vector (fewer coordinates than the rank) is
// allowed and addresses a sub-element: the offset of its first scalar
// is returned. More coordinates than the rank fail with
// ErrRankMismatch; a coordinate outside [0, DimSize(d)) fails with
// ErrOutOfBounds.
func (sp *Space) PositionOf(coords ...int) (int, error) {
	if len(coords) > len(sp.sizes) {
		return 0, fmt.Errorf("%w: got %d coordinates for a rank-%d space", ErrRankMismatch, len(coords), len(sp.sizes))
	}
	pos := 0
	for d, c := range coords {
		if c < 0 || c >= sp.sizes[d] {
			return 0, fmt.Errorf("%w: coordinate %d of dimension %d is outside [0, %d)", ErrOutOfBounds, c, d, sp.sizes[d])
		}
		pos += sp.mapIndex(d, c) * sp.strides[d]
	}
	return pos, nil
}

// CoordinatesOf translates a flat position back to a coordinate
// vector. It is the inverse of PositionOf for non-segmented spaces;
// calling it on a segmented space fails, since a segmented space has
// no dense position numbering to invert.
func (sp *Space) CoordinatesOf(pos int) ([]int, error) {
	if sp.segmented {
		return nil, fmt.Errorf("%w: cannot invert positions of a segmented space", ErrInvalidArgument)
	}
	if pos < 0 || pos >= sp.Elements() {
		return nil, fmt.Errorf("%w: position %d is outside [0, %d)", ErrOutOfBounds, pos, sp.Elements())
	}
	coords := make([]int, len(sp.sizes))
	rem := pos
	for d := len(sp.sizes) - 1; d >= 0; d-- {
		s := sp.sizes[d]
		coords[d] = rem % s
		rem /= s
	}
	return coords, nil
}

// From returns a space describing only dimensions [d, Rank()), sharing
// the stride tables of the receiver. It is used to address elements at
// a lower rank, such as the rows of a matrix.
func (sp *Space) From(d int) (*Space, error) {
	if d < 0 || d > len(sp.sizes) {
		return nil, fmt.Errorf("%w: dimension %d is outside [0, %d]", ErrOutOfBounds, d, len(sp.sizes))
	}
	var remap [][]int
	if sp.remap != nil {
		remap = sp.remap[d:]
	}
	return newSpaceRaw(sp.sizes[d:], sp.strides[d:], remap), nil
}

// Increment advances a coordinate vector to the next position in
// row-major order (innermost dimension fastest), mutating it in place.
// It returns false once the vector has wrapped past the last element,
// leaving it at all zeros; the caller must stop iterating.
//
// It panics if the vector's length does not match the space's rank.
func (sp *Space) Increment(coords []int) bool {
	if len(coords) != len(sp.sizes) {
		panic(fmt.Errorf("%w: got %d coordinates for a rank-%d space", ErrRankMismatch, len(coords), len(sp.sizes)))
	}
	for d := len(coords) - 1; d >= 0; d-- {
		coords[d]++
		if coords[d] < sp.sizes[d] {
			return true
		}
		coords[d] = 0
	}
	return false
}
