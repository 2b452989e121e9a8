// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import "errors"

var (
	// ErrRankMismatch indicates a coordinate vector whose length disagrees
	// with the dimensionality the operation expects.
	ErrRankMismatch = errors.New("ndarray: coordinate rank mismatch")
	// ErrOutOfBounds indicates a coordinate, point index or range bound
	// resolving outside the valid range of its dimension.
	ErrOutOfBounds = errors.New("ndarray: index out of bounds")
	// ErrInvalidIndex indicates a malformed index-descriptor list, such as
	// more than one ellipsis or more descriptors than dimensions.
	ErrInvalidIndex = errors.New("ndarray: invalid index expression")
	// ErrShapeMismatch indicates a bulk copy or comparison between arrays
	// whose shapes are not identical.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")
	// ErrReadOnly indicates a mutation attempted on a read-only array
	// or window.
	ErrReadOnly = errors.New("ndarray: array is read-only")
	// ErrInvalidArgument indicates a construction-time invariant violation.
	ErrInvalidArgument = errors.New("ndarray: invalid argument")
)
