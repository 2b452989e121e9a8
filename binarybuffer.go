// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ndarray

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nlpodyssey/ndarray/float16"
)

// Scalar is the set of element types a BinaryBuffer can store.
type Scalar interface {
	bool | uint8 | int8 |
		uint16 | int16 | float16.F16 | float16.BF16 |
		uint32 | int32 | float32 |
		uint64 | int64 | float64
}

// BinaryBuffer is a Buffer backend storing elements as little-endian
// bytes in a flat byte slice. It lets a dense or sparse array operate
// directly over binary data, such as the payload of a tensor file,
// without converting it to a typed slice first.
//
// Views created with Offset alias the same byte slice.
type BinaryBuffer[T Scalar] struct {
	data  []byte
	width int
}

// NewBinaryBuffer returns a zeroed BinaryBuffer of n elements.
func NewBinaryBuffer[T Scalar](n int) *BinaryBuffer[T] {
	width := scalarWidth[T]()
	return &BinaryBuffer[T]{data: make([]byte, n*width), width: width}
}

// BinaryBufferOf wraps an existing byte slice, which must hold a whole
// number of elements. The slice is used directly, not copied.
func BinaryBufferOf[T Scalar](data []byte) (*BinaryBuffer[T], error) {
	width := scalarWidth[T]()
	if len(data)%width != 0 {
		return nil, fmt.Errorf("%w: %d bytes do not hold a whole number of %d-byte elements", ErrInvalidArgument, len(data), width)
	}
	return &BinaryBuffer[T]{data: data, width: width}, nil
}

// Bytes returns the backing byte slice (not a copy).
func (b *BinaryBuffer[T]) Bytes() []byte {
	return b.data
}

func (b *BinaryBuffer[T]) Len() int {
	return len(b.data) / b.width
}

func (b *BinaryBuffer[T]) Get(pos int) T {
	raw := b.data[pos*b.width : (pos+1)*b.width]
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = raw[0] != 0
	case *uint8:
		*p = raw[0]
	case *int8:
		*p = int8(raw[0])
	case *uint16:
		*p = binary.LittleEndian.Uint16(raw)
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(raw))
	case *float16.F16:
		*p = float16.F16(binary.LittleEndian.Uint16(raw))
	case *float16.BF16:
		*p = float16.BF16(binary.LittleEndian.Uint16(raw))
	case *uint32:
		*p = binary.LittleEndian.Uint32(raw)
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(raw))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(raw))
	case *uint64:
		*p = binary.LittleEndian.Uint64(raw)
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(raw))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(raw))
	}
	return v
}

func (b *BinaryBuffer[T]) Set(value T, pos int) {
	raw := b.data[pos*b.width : (pos+1)*b.width]
	switch v := any(value).(type) {
	case bool:
		raw[0] = 0
		if v {
			raw[0] = 1
		}
	case uint8:
		raw[0] = v
	case int8:
		raw[0] = byte(v)
	case uint16:
		binary.LittleEndian.PutUint16(raw, v)
	case int16:
		binary.LittleEndian.PutUint16(raw, uint16(v))
	case float16.F16:
		binary.LittleEndian.PutUint16(raw, uint16(v))
	case float16.BF16:
		binary.LittleEndian.PutUint16(raw, uint16(v))
	case uint32:
		binary.LittleEndian.PutUint32(raw, v)
	case int32:
		binary.LittleEndian.PutUint32(raw, uint32(v))
	case float32:
		binary.LittleEndian.PutUint32(raw, math.Float32bits(v))
	case uint64:
		binary.LittleEndian.PutUint64(raw, v)
	case int64:
		binary.LittleEndian.PutUint64(raw, uint64(v))
	case float64:
		binary.LittleEndian.PutUint64(raw, math.Float64bits(v))
	}
}

func (b *BinaryBuffer[T]) Read(dst []T, pos int) int {
	n := min(len(dst), b.Len()-pos)
	for i := 0; i < n; i++ {
		dst[i] = b.Get(pos + i)
	}
	return n
}

func (b *BinaryBuffer[T]) Write(src []T, pos int) int {
	n := min(len(src), b.Len()-pos)
	for i := 0; i < n; i++ {
		b.Set(src[i], pos+i)
	}
	return n
}

func (b *BinaryBuffer[T]) Offset(pos int) Buffer[T] {
	return &BinaryBuffer[T]{data: b.data[pos*b.width:], width: b.width}
}

func scalarWidth[T Scalar]() int {
	var v T
	switch any(v).(type) {
	case bool, uint8, int8:
		return 1
	case uint16, int16, float16.F16, float16.BF16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}
