// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"fmt"
	"iter"
)

// Coordinates iterates over every position of the space in row-major
// order (innermost dimension fastest).
//
// It yields the flat position, relative to the space's position 0, and
// the coordinate vector it belongs to.
//
// To avoid allocating per step, the yielded coordinate slice is owned
// by the iterator: don't modify or retain it inside the loop.
func (sp *Space) Coordinates() iter.Seq2[int, []int] {
	return sp.CoordinatesOn(make([]int, sp.Rank()))
}

// CoordinatesOn is like Coordinates but advances the iteration on the
// given coordinate slice, whose length must equal the space's rank.
// It panics otherwise.
func (sp *Space) CoordinatesOn(coords []int) iter.Seq2[int, []int] {
	if len(coords) != sp.Rank() {
		panic(fmt.Errorf("%w: got %d coordinates for a rank-%d space", ErrRankMismatch, len(coords), sp.Rank()))
	}
	return func(yield func(int, []int) bool) {
		if sp.Elements() == 0 {
			return
		}
		clear(coords)
		for {
			pos, _ := sp.PositionOf(coords...) // coords are in range by construction
			if !yield(pos, coords) {
				return
			}
			if !sp.Increment(coords) {
				return
			}
		}
	}
}

// Positions iterates over the flat positions of the space in row-major
// order, relative to the space's position 0.
func (sp *Space) Positions() iter.Seq[int] {
	return func(yield func(int) bool) {
		for pos := range sp.Coordinates() {
			if !yield(pos) {
				return
			}
		}
	}
}
