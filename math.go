// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import "fmt"

// checkedMul multiplies two non-negative ints and checks for overflow.
func checkedMul(a, b int) (int, error) {
	c := a * b
	if a > 1 && b > 1 && (c/a != b || c < 0) {
		return c, fmt.Errorf("%w: multiplication overflow: %d * %d", ErrInvalidArgument, a, b)
	}
	return c, nil
}
