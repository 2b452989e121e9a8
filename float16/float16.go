// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package float16 provides raw-bits representations of 16-bit floating
// point values, usable as element types of binary buffers, with
// conversions to and from float32.
package float16

import "math"

// F16 is a 16-bit half-precision (IEEE 754 binary16) floating-point
// value, represented as raw bits.
type F16 uint16

// BF16 is a 16-bit brain floating-point value, represented as raw
// bits.
type BF16 uint16

// Bits returns the raw bit representation.
func (f F16) Bits() uint16 { return uint16(f) }

// Bits returns the raw bit representation.
func (f BF16) Bits() uint16 { return uint16(f) }

// Float32 converts the half-precision value to float32.
// The conversion is exact: every binary16 value is representable as
// float32.
func (f F16) Float32() float32 {
	sign := uint32(f>>15) & 1
	exp := uint32(f>>10) & 0x1f
	frac := uint32(f) & 0x3ff

	var bits uint32
	switch {
	case exp == 0x1f: // Inf or NaN
		bits = sign<<31 | 0xff<<23 | frac<<13
	case exp == 0:
		if frac == 0 { // signed zero
			bits = sign << 31
		} else { // subnormal: renormalize for the wider exponent range
			e := uint32(113)
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			bits = sign<<31 | e<<23 | (frac&0x3ff)<<13
		}
	default:
		bits = sign<<31 | (exp+112)<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}

// Float32 converts the brain floating-point value to float32.
// The conversion is exact: a BF16 is the upper half of a float32.
func (f BF16) Float32() float32 {
	return math.Float32frombits(uint32(f) << 16)
}

// BF16FromFloat32 converts a float32 to BF16 by truncating the lower
// 16 bits of the mantissa (round towards zero).
func BF16FromFloat32(x float32) BF16 {
	return BF16(math.Float32bits(x) >> 16)
}
