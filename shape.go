// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// UnknownSize is the sentinel for a dimension whose size is not known.
const UnknownSize = -1

// Shape is an immutable description of an array's dimension sizes.
//
// The rank (number of dimensions) may be unknown, and any individual
// dimension size may be UnknownSize. A known dimension size is always >= 0.
type Shape struct {
	sizes     []int
	rankKnown bool
}

// NewShape returns a Shape with the given dimension sizes.
//
// Each size must be >= 0, or UnknownSize. The sizes are copied to
// prevent tampering.
func NewShape(sizes ...int) (Shape, error) {
	for i, v := range sizes {
		if v < UnknownSize {
			return Shape{}, fmt.Errorf("%w: negative size %d for dimension %d", ErrInvalidArgument, v, i)
		}
	}
	return Shape{sizes: slices.Clone(sizes), rankKnown: true}, nil
}

// UnknownShape returns a Shape whose rank is unknown.
func UnknownShape() Shape {
	return Shape{}
}

// RankKnown reports whether the number of dimensions is known.
func (s Shape) RankKnown() bool {
	return s.rankKnown
}

// Rank returns the number of dimensions.
// The value is meaningful only if RankKnown reports true.
func (s Shape) Rank() int {
	return len(s.sizes)
}

// Size returns the size of dimension d, possibly UnknownSize.
func (s Shape) Size(d int) int {
	return s.sizes[d]
}

// Sizes returns a copy of all dimension sizes, or nil if the rank
// is unknown.
func (s Shape) Sizes() []int {
	return slices.Clone(s.sizes)
}

// FullyKnown reports whether the rank and every dimension size are known.
func (s Shape) FullyKnown() bool {
	if !s.rankKnown {
		return false
	}
	for _, v := range s.sizes {
		if v == UnknownSize {
			return false
		}
	}
	return true
}

// Elements returns the total number of elements described by the shape
// (the product of all dimension sizes; 1 for a rank-0 shape).
//
// It fails if the rank or any dimension size is unknown, or if the
// product overflows int.
func (s Shape) Elements() (int, error) {
	if !s.FullyKnown() {
		return 0, fmt.Errorf("%w: cannot count elements of a shape with unknown dimensions", ErrInvalidArgument)
	}
	n := 1
	for _, v := range s.sizes {
		var err error
		if n, err = checkedMul(n, v); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// Equal reports whether two shapes have identical rank and all sizes
// known and equal. A shape with unknown rank, or any unknown size,
// is never equal to anything, itself included.
func (s Shape) Equal(o Shape) bool {
	if !s.FullyKnown() || !o.FullyKnown() {
		return false
	}
	return slices.Equal(s.sizes, o.sizes)
}

// String renders the shape like "(3, 4)"; unknown sizes render as "?"
// and an unknown rank renders as "(?...)".
func (s Shape) String() string {
	if !s.rankKnown {
		return "(?...)"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range s.sizes {
		if i > 0 {
			sb.WriteString(", ")
		}
		if v == UnknownSize {
			sb.WriteByte('?')
		} else {
			fmt.Fprintf(&sb, "%d", v)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// MarshalJSON prevents a rank-0 Shape from being serialized as "null",
// preferring an empty array "[]" instead. A shape of unknown rank is
// serialized as "null".
func (s Shape) MarshalJSON() ([]byte, error) {
	if !s.rankKnown {
		return []byte("null"), nil
	}
	if s.sizes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.sizes)
}
