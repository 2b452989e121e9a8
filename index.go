// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"
	"slices"
)

// Index describes how one dimension takes part in a slicing operation.
//
// A value is obtained from one of the constructor functions: At, AtKeep,
// All, Span, Range, From, To, Step, Pick, Odd, Even, Flip, NewAxis,
// Ellipsis. Point and sequence indices may be negative, counting from
// the end of the dimension.
type Index interface {
	isIndex()
}

type pointIndex struct {
	i    int
	keep bool
}

type allIndex struct{}

type rangeIndex struct {
	begin, end, step int
	hasBegin, hasEnd bool
}

// seqKind selects how a sequence index obtains its position list.
type seqKind uint8

const (
	seqExplicit seqKind = iota
	seqOdd
	seqEven
	seqFlip
)

type seqIndex struct {
	kind      seqKind
	positions []int
}

type newAxisIndex struct{}

type ellipsisIndex struct{}

func (pointIndex) isIndex()    {}
func (allIndex) isIndex()      {}
func (rangeIndex) isIndex()    {}
func (seqIndex) isIndex()      {}
func (newAxisIndex) isIndex()  {}
func (ellipsisIndex) isIndex() {}

// At selects the single element at position i of a dimension,
// collapsing the dimension (the result has one dimension fewer).
// A negative i counts from the end.
func At(i int) Index {
	return pointIndex{i: i}
}

// AtKeep selects the single element at position i of a dimension but
// keeps a size-1 dimension in the result instead of collapsing it.
func AtKeep(i int) Index {
	return pointIndex{i: i, keep: true}
}

// All selects a whole dimension unchanged.
func All() Index {
	return allIndex{}
}

// Span selects the half-open range [begin, end) of a dimension with
// step 1. Negative bounds count from the end.
func Span(begin, end int) Index {
	return rangeIndex{begin: begin, end: end, step: 1, hasBegin: true, hasEnd: true}
}

// Range selects the positions visited stepping from begin towards end
// by step, with Python slice semantics: step may be negative and
// bounds are clamped to the dimension, never failing. A range whose
// direction is inconsistent with its bounds selects zero elements.
func Range(begin, end, step int) Index {
	return rangeIndex{begin: begin, end: end, step: step, hasBegin: true, hasEnd: true}
}

// From selects the range [begin, end-of-dimension) with step 1.
func From(begin int) Index {
	return rangeIndex{begin: begin, step: 1, hasBegin: true}
}

// To selects the range [0, end) with step 1.
func To(end int) Index {
	return rangeIndex{end: end, step: 1, hasEnd: true}
}

// Step selects a whole dimension walked by the given step, from its
// first element for a positive step or from its last for a negative
// one.
func Step(step int) Index {
	return rangeIndex{step: step}
}

// Pick selects the given positions of a dimension, in the given order,
// which may repeat and reorder freely. Negative positions count from
// the end. The resulting space is segmented.
func Pick(positions ...int) Index {
	return seqIndex{kind: seqExplicit, positions: slices.Clone(positions)}
}

// Odd selects the odd positions (1, 3, 5, ...) of a dimension.
func Odd() Index {
	return seqIndex{kind: seqOdd}
}

// Even selects the even positions (0, 2, 4, ...) of a dimension.
func Even() Index {
	return seqIndex{kind: seqEven}
}

// Flip selects a whole dimension in reverse order.
func Flip() Index {
	return seqIndex{kind: seqFlip}
}

// NewAxis inserts a dimension of size 1 at its position in the result,
// consuming no input dimension.
func NewAxis() Index {
	return newAxisIndex{}
}

// Ellipsis expands to as many All indices as needed for the whole
// index list to consume every input dimension exactly once. At most
// one Ellipsis is allowed per slicing operation.
func Ellipsis() Index {
	return ellipsisIndex{}
}

// MapTo resolves a list of index descriptors against the space,
// returning the space the slice addresses plus a base position offset
// relative to the receiver's position 0.
//
// Dimensions not covered by any descriptor are implicitly kept whole,
// as if trailing All indices were supplied.
func (sp *Space) MapTo(indexes ...Index) (*Space, int, error) {
	expanded, err := expandEllipsis(indexes, len(sp.sizes))
	if err != nil {
		return nil, 0, err
	}

	var (
		outSizes   []int
		outStrides []int
		outRemap   [][]int
		offset     int
	)
	appendDim := func(size, stride int, remap []int) {
		outSizes = append(outSizes, size)
		outStrides = append(outStrides, stride)
		outRemap = append(outRemap, remap)
	}

	d := 0 // next input dimension to consume
	for _, ix := range expanded {
		if _, ok := ix.(newAxisIndex); ok {
			appendDim(1, 0, nil)
			continue
		}

		size := sp.sizes[d]
		stride := sp.strides[d]
		var src []int // explicit source index list of dimension d, if any
		if sp.remap != nil {
			src = sp.remap[d]
		}

		switch ix := ix.(type) {
		case pointIndex:
			i, err := resolvePoint(ix.i, size, d)
			if err != nil {
				return nil, 0, err
			}
			if src != nil {
				i = src[i]
			}
			offset += i * stride
			if ix.keep {
				appendDim(1, stride, nil)
			}

		case allIndex:
			appendDim(size, stride, src)

		case rangeIndex:
			begin, n, step, err := resolveRange(ix, size)
			if err != nil {
				return nil, 0, err
			}
			switch {
			case src != nil:
				remap := make([]int, n)
				for k := range remap {
					remap[k] = src[begin+k*step]
				}
				appendDim(n, stride, remap)
			case n > 0:
				offset += begin * stride
				appendDim(n, stride*step, nil)
			default:
				appendDim(0, stride*step, nil)
			}

		case seqIndex:
			positions, err := resolveSequence(ix, size, d)
			if err != nil {
				return nil, 0, err
			}
			if src != nil {
				for k, p := range positions {
					positions[k] = src[p]
				}
			}
			appendDim(len(positions), stride, positions)

		default:
			return nil, 0, fmt.Errorf("%w: unsupported index descriptor %T", ErrInvalidIndex, ix)
		}
		d++
	}

	// Dimensions left unconsumed are kept whole.
	for ; d < len(sp.sizes); d++ {
		var src []int
		if sp.remap != nil {
			src = sp.remap[d]
		}
		appendDim(sp.sizes[d], sp.strides[d], src)
	}

	return newSpaceRaw(outSizes, outStrides, outRemap), offset, nil
}

// expandEllipsis replaces the single permitted Ellipsis with as many
// All indices as needed for the descriptor list to consume every one
// of the rank input dimensions exactly once.
func expandEllipsis(indexes []Index, rank int) ([]Index, error) {
	consuming := 0
	ellipses := 0
	for _, ix := range indexes {
		switch ix.(type) {
		case ellipsisIndex:
			ellipses++
		case newAxisIndex:
		default:
			consuming++
		}
	}
	if ellipses > 1 {
		return nil, fmt.Errorf("%w: at most one ellipsis is allowed, got %d", ErrInvalidIndex, ellipses)
	}
	if consuming > rank {
		return nil, fmt.Errorf("%w: %d indices address only %d dimensions", ErrInvalidIndex, consuming, rank)
	}
	if ellipses == 0 {
		return indexes, nil
	}

	fill := rank - consuming
	expanded := make([]Index, 0, len(indexes)+fill-1)
	for _, ix := range indexes {
		if _, ok := ix.(ellipsisIndex); ok {
			for range fill {
				expanded = append(expanded, allIndex{})
			}
			continue
		}
		expanded = append(expanded, ix)
	}
	return expanded, nil
}

// resolvePoint resolves a possibly negative point index against a
// dimension size.
func resolvePoint(i, size, dim int) (int, error) {
	r := i
	if r < 0 {
		r += size
	}
	if r < 0 || r >= size {
		return 0, fmt.Errorf("%w: index %d of dimension %d is outside [0, %d)", ErrOutOfBounds, i, dim, size)
	}
	return r, nil
}

// resolveRange applies Python slice semantics to a range index:
// defaulted bounds, negative values counted from the end, clamping to
// the dimension, and a zero size whenever the bounds are inconsistent
// with the step direction.
func resolveRange(r rangeIndex, size int) (begin, n, step int, err error) {
	step = r.step
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("%w: range step cannot be zero", ErrInvalidIndex)
	}

	if step > 0 {
		begin = 0
		if r.hasBegin {
			begin = clampBound(r.begin, size, 0)
		}
		end := size
		if r.hasEnd {
			end = clampBound(r.end, size, 0)
		}
		if end > begin {
			n = (end - begin + step - 1) / step
		}
		return begin, n, step, nil
	}

	begin = size - 1
	if r.hasBegin {
		begin = clampBound(r.begin, size, -1)
	}
	end := -1
	if r.hasEnd {
		end = clampBound(r.end, size, -1)
	}
	if end < begin {
		n = (end - begin + step + 1) / step
	}
	return begin, n, step, nil
}

// clampBound resolves a possibly negative slice bound against a
// dimension size and clamps it to [lo, size+lo], where lo is 0 for
// positive steps and -1 for negative ones.
func clampBound(v, size, lo int) int {
	if v < 0 {
		v += size
	}
	if v < lo {
		return lo
	}
	if v > size+lo {
		return size + lo
	}
	return v
}

// resolveSequence materializes the position list of a sequence index
// against a dimension size, bounds-checking every entry.
func resolveSequence(ix seqIndex, size, dim int) ([]int, error) {
	switch ix.kind {
	case seqOdd:
		positions := make([]int, 0, size/2)
		for i := 1; i < size; i += 2 {
			positions = append(positions, i)
		}
		return positions, nil
	case seqEven:
		positions := make([]int, 0, (size+1)/2)
		for i := 0; i < size; i += 2 {
			positions = append(positions, i)
		}
		return positions, nil
	case seqFlip:
		positions := make([]int, size)
		for i := range positions {
			positions[i] = size - 1 - i
		}
		return positions, nil
	}

	positions := make([]int, len(ix.positions))
	for k, p := range ix.positions {
		r, err := resolvePoint(p, size, dim)
		if err != nil {
			return nil, err
		}
		positions[k] = r
	}
	return positions, nil
}
