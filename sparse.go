// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"
	"slices"
	"sort"
)

// Sparse is an N-dimensional array storing only the coordinate/value
// pairs whose value differs from a default value.
//
// Stored entries live in two parallel tables: a coordinate table of
// one rank-length row per entry, and a value table of the same length.
// Rows are kept in strictly ascending row-major (lexicographic)
// coordinate order, which makes point lookup a binary search. Any
// coordinate without a stored row implicitly holds the default value.
//
// Slicing a Sparse produces a window: a read-only view that shares the
// source's storage and translates its own coordinates to source
// coordinates on every access. Mutating the source is visible through
// existing windows on their next read.
type Sparse[T comparable] struct {
	space  *Space
	def    T
	coords []int // flattened rank-length rows, row-major sorted
	values []T

	// Window state: src is nil for an owned array. A window keeps its
	// base offset into the source's coordinate space and resolves every
	// read through src.
	src    *Sparse[T]
	offset int
}

// NewSparse returns an empty sparse array of the given shape: every
// coordinate holds the default value.
func NewSparse[T comparable](shape Shape, defaultValue T) (*Sparse[T], error) {
	space, err := NewSpace(shape)
	if err != nil {
		return nil, err
	}
	return &Sparse[T]{space: space, def: defaultValue}, nil
}

// NewSparseWithEntries returns a sparse array of the given shape
// holding the given coordinate rows and values.
//
// Every row must have exactly one coordinate per dimension, within
// bounds, and there must be exactly one value per row. The rows are
// stored in the given order: if they are not already in ascending
// row-major coordinate order, the caller must restore the sort
// invariant with SortIndicesAndValues before any lookup.
func NewSparseWithEntries[T comparable](shape Shape, defaultValue T, indices [][]int, values []T) (*Sparse[T], error) {
	s, err := NewSparse(shape, defaultValue)
	if err != nil {
		return nil, err
	}
	if len(indices) != len(values) {
		return nil, fmt.Errorf("%w: got %d coordinate rows for %d values", ErrInvalidArgument, len(indices), len(values))
	}
	rank := s.space.Rank()
	s.coords = make([]int, 0, len(indices)*rank)
	for r, row := range indices {
		if len(row) != rank {
			return nil, fmt.Errorf("%w: coordinate row %d has %d coordinates, want %d", ErrInvalidArgument, r, len(row), rank)
		}
		for d, c := range row {
			if c < 0 || c >= s.space.DimSize(d) {
				return nil, fmt.Errorf("%w: coordinate %d of dimension %d in row %d is outside [0, %d)", ErrOutOfBounds, c, d, r, s.space.DimSize(d))
			}
		}
		s.coords = append(s.coords, row...)
	}
	s.values = slices.Clone(values)
	return s, nil
}

// Shape returns the dense shape the sparse array represents.
func (s *Sparse[T]) Shape() Shape {
	return s.space.Shape()
}

// Space returns the dimensional space the array resolves coordinates
// through.
func (s *Sparse[T]) Space() *Space {
	return s.space
}

// DefaultValue returns the value implicitly held by every coordinate
// without a stored entry.
func (s *Sparse[T]) DefaultValue() T {
	return s.def
}

// IsWindow reports whether the array is a read-only view into another
// sparse array.
func (s *Sparse[T]) IsWindow() bool {
	return s.src != nil
}

// Len returns the number of stored entries. It is always 0 for a
// window, which stores nothing of its own.
func (s *Sparse[T]) Len() int {
	return len(s.values)
}

// Indices returns a copy of the stored coordinate rows, in storage
// order.
func (s *Sparse[T]) Indices() [][]int {
	out := make([][]int, len(s.values))
	for r := range out {
		out[r] = slices.Clone(s.row(r))
	}
	return out
}

// Values returns a copy of the stored values, in storage order.
func (s *Sparse[T]) Values() []T {
	return slices.Clone(s.values)
}

// row returns the coordinate row at index r, sharing the backing
// table.
func (s *Sparse[T]) row(r int) []int {
	rank := s.space.Rank()
	return s.coords[r*rank : (r+1)*rank]
}

// compareRow lexicographically compares the stored row at index r with
// a coordinate vector.
func (s *Sparse[T]) compareRow(r int, coords []int) int {
	return slices.Compare(s.row(r), coords)
}

// search binary-searches the coordinate table for the given vector,
// returning the row index of the match, or the insertion point that
// keeps the table sorted when there is no match.
func (s *Sparse[T]) search(coords []int) (row int, found bool) {
	row = sort.Search(len(s.values), func(r int) bool {
		return s.compareRow(r, coords) >= 0
	})
	found = row < len(s.values) && s.compareRow(row, coords) == 0
	return row, found
}

// checkCoords validates a full-rank coordinate vector against the
// array's space.
func (s *Sparse[T]) checkCoords(coords []int) error {
	if len(coords) != s.space.Rank() {
		return fmt.Errorf("%w: got %d coordinates for a rank-%d array", ErrRankMismatch, len(coords), s.space.Rank())
	}
	_, err := s.space.PositionOf(coords...)
	return err
}

// Get returns the value at the given coordinates: the stored value if
// an entry exists, the default value otherwise.
//
// On a window, the coordinates are translated through the window's
// space and base offset to source coordinates, and the read is
// delegated to the source.
func (s *Sparse[T]) Get(coords ...int) (T, error) {
	var zero T
	if err := s.checkCoords(coords); err != nil {
		return zero, err
	}
	if s.src != nil {
		pos, _ := s.space.PositionOf(coords...)
		srcCoords, err := s.src.space.CoordinatesOf(s.offset + pos)
		if err != nil {
			return zero, err
		}
		return s.src.Get(srcCoords...)
	}
	if row, found := s.search(coords); found {
		return s.values[row], nil
	}
	return s.def, nil
}

// Set stores a value at the given coordinates, preserving the sort
// invariant:
//
//   - overwriting an entry with a non-default value updates it in place;
//   - overwriting an entry with the default value removes it;
//   - setting a missing coordinate to a non-default value inserts a row
//     at its binary-search insertion point;
//   - setting a missing coordinate to the default value does nothing.
//
// Windows are read-only: Set fails with ErrReadOnly.
// A failed Set leaves the array unmodified.
func (s *Sparse[T]) Set(value T, coords ...int) error {
	if s.src != nil {
		return fmt.Errorf("%w: cannot set on a sparse window", ErrReadOnly)
	}
	if err := s.checkCoords(coords); err != nil {
		return err
	}
	rank := s.space.Rank()
	row, found := s.search(coords)
	switch {
	case found && value == s.def:
		s.coords = slices.Delete(s.coords, row*rank, (row+1)*rank)
		s.values = slices.Delete(s.values, row, row+1)
	case found:
		s.values[row] = value
	case value != s.def:
		s.coords = slices.Insert(s.coords, row*rank, coords...)
		s.values = slices.Insert(s.values, row, value)
	}
	return nil
}

// SortIndicesAndValues re-sorts the stored rows into ascending
// row-major coordinate order, keeping each value with its row. It is
// needed only after constructing an array from rows that were not
// already sorted; Set and ReadFrom maintain the invariant on their
// own. The sort is stable.
func (s *Sparse[T]) SortIndicesAndValues() error {
	if s.src != nil {
		return fmt.Errorf("%w: cannot sort a sparse window", ErrReadOnly)
	}
	sort.Stable(sparseRowSort[T]{s})
	return nil
}

// sparseRowSort sorts a sparse array's parallel coordinate/value
// tables by row-major coordinate order.
type sparseRowSort[T comparable] struct {
	s *Sparse[T]
}

func (rs sparseRowSort[T]) Len() int {
	return len(rs.s.values)
}

func (rs sparseRowSort[T]) Less(i, j int) bool {
	return rs.s.compareRow(i, rs.s.row(j)) < 0
}

func (rs sparseRowSort[T]) Swap(i, j int) {
	ri, rj := rs.s.row(i), rs.s.row(j)
	for d := range ri {
		ri[d], rj[d] = rj[d], ri[d]
	}
	rs.s.values[i], rs.s.values[j] = rs.s.values[j], rs.s.values[i]
}

// ReadFrom replaces the array's entries with the non-default elements
// of a dense buffer holding exactly one element per coordinate of the
// array's shape, in row-major order.
//
// The scan order is already row-major, so the sort invariant holds
// without a separate sorting step.
func (s *Sparse[T]) ReadFrom(buf Buffer[T]) error {
	if s.src != nil {
		return fmt.Errorf("%w: cannot ingest into a sparse window", ErrReadOnly)
	}
	if n := s.space.Elements(); buf.Len() != n {
		return fmt.Errorf("%w: shape %s holds %d elements, buffer holds %d", ErrShapeMismatch, s.Shape(), n, buf.Len())
	}
	s.coords = s.coords[:0]
	s.values = s.values[:0]
	for pos, coords := range s.space.Coordinates() {
		if v := buf.Get(pos); v != s.def {
			s.coords = append(s.coords, coords...)
			s.values = append(s.values, v)
		}
	}
	return nil
}

// WriteTo materializes the array into a dense buffer, filling every
// position with the default value and then writing the stored entries
// at their flat positions. Windows materialize by scanning their own
// coordinate space.
func (s *Sparse[T]) WriteTo(buf Buffer[T]) error {
	n := s.space.Elements()
	if buf.Len() < n {
		return fmt.Errorf("%w: shape %s holds %d elements, buffer holds %d", ErrShapeMismatch, s.Shape(), n, buf.Len())
	}
	if s.src != nil {
		i := 0
		for _, coords := range s.space.Coordinates() {
			v, err := s.Get(coords...)
			if err != nil {
				return err
			}
			buf.Set(v, i)
			i++
		}
		return nil
	}
	for i := 0; i < n; i++ {
		buf.Set(s.def, i)
	}
	for r := range s.values {
		pos, err := s.space.PositionOf(s.row(r)...)
		if err != nil {
			return err
		}
		buf.Set(s.values[r], pos)
	}
	return nil
}

// Slice resolves the index descriptors against the array's space and
// returns a read-only window sharing the source's storage. Slicing a
// window chains back to the original owned array.
func (s *Sparse[T]) Slice(indexes ...Index) (*Sparse[T], error) {
	space, offset, err := s.space.MapTo(indexes...)
	if err != nil {
		return nil, err
	}
	src, base := s, offset
	if s.src != nil {
		src, base = s.src, s.offset+offset
	}
	return &Sparse[T]{
		space:  space,
		def:    s.def,
		src:    src,
		offset: base,
	}, nil
}

// Equal reports whether two sparse arrays have equal shapes and hold
// equal values at every coordinate. When both sides are owned arrays
// with the same default value, the comparison runs directly over the
// stored rows; windows and segmented spaces fall back to
// coordinate-by-coordinate comparison, since their traversal order no
// longer matches the backing rows.
func (s *Sparse[T]) Equal(o *Sparse[T]) bool {
	if !s.Shape().Equal(o.Shape()) {
		return false
	}
	if s.src == nil && o.src == nil && !s.space.Segmented() && !o.space.Segmented() && s.def == o.def {
		return slices.Equal(s.coords, o.coords) && slices.Equal(s.values, o.values)
	}
	for _, coords := range s.space.Coordinates() {
		a, _ := s.Get(coords...)
		b, _ := o.Get(coords...)
		if a != b {
			return false
		}
	}
	return true
}
