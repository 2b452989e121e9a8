// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ndarray implements dense and sparse multidimensional arrays
// over flat typed buffers, with a NumPy-style indexing and slicing
// algebra.
//
// A Shape describes dimension sizes; a Space derived from it carries
// row-major strides and translates coordinate vectors to flat buffer
// positions and back. Slicing resolves a list of index descriptors
// (point, range, sequence, new-axis, ellipsis) against a space and
// yields a new space of possibly different rank plus a base offset,
// which Dense and Sparse wrap into views sharing the original storage.
//
// Sparse arrays keep only non-default coordinate/value pairs, sorted
// in row-major coordinate order, giving binary-search point lookup and
// sort-free dense ingestion.
//
// The package is synchronous and in-memory; arrays and buffers carry
// no synchronization, so concurrent mutation must be serialized by the
// caller.
package ndarray
