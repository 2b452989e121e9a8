// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

// Buffer is flat random-access storage of elements of type T, the
// backing store of dense arrays and the interchange format of sparse
// dense ingestion/materialization.
//
// Positions are zero-based and must be within [0, Len()); accessing a
// position outside the buffer panics, like indexing a Go slice.
// Buffers carry no synchronization: concurrent mutation must be
// serialized by the caller.
type Buffer[T any] interface {
	// Get returns the element at the given position.
	Get(pos int) T

	// Set stores the element at the given position.
	Set(value T, pos int)

	// Len returns the number of elements the buffer holds.
	Len() int

	// Read copies elements starting at the given position into dst,
	// returning how many were copied (bounded by both lengths).
	Read(dst []T, pos int) int

	// Write copies the elements of src into the buffer starting at the
	// given position, returning how many were copied.
	Write(src []T, pos int) int

	// Offset returns a view of the buffer starting at the given
	// position. The view shares the backing storage: writes through
	// either are visible through both.
	Offset(pos int) Buffer[T]
}

// SliceBuffer adapts a Go slice to the Buffer interface.
// The slice is used directly, not copied: views created with Offset
// alias the same backing array.
type SliceBuffer[T any] []T

// NewSliceBuffer returns a zeroed SliceBuffer of n elements.
func NewSliceBuffer[T any](n int) SliceBuffer[T] {
	return make(SliceBuffer[T], n)
}

func (b SliceBuffer[T]) Get(pos int) T              { return b[pos] }
func (b SliceBuffer[T]) Set(value T, pos int)       { b[pos] = value }
func (b SliceBuffer[T]) Len() int                   { return len(b) }
func (b SliceBuffer[T]) Read(dst []T, pos int) int  { return copy(dst, b[pos:]) }
func (b SliceBuffer[T]) Write(src []T, pos int) int { return copy(b[pos:], src) }
func (b SliceBuffer[T]) Offset(pos int) Buffer[T]   { return b[pos:] }
