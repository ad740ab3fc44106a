// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape and the index geometry of dense N-dimensional arrays.
//
// A Shape is a DType (the type of the unit element) and the dimensions of each axis. From a shape
// this package derives the memory layout used by the ndarray package: row-major strides (in bytes,
// scaled by the element size), back-strides, the enumeration of every coordinate tuple and the
// linear (flat) offset each tuple maps to.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of an array. Shapes here always have rank >= 1.
//   - Axis: the index of a dimension on a multidimensional array.
//   - Dimension: the size of an array in one of its axes.
//   - DType: the data type of the unit element of an array, from github.com/gomlx/gopjrt/dtypes.
//   - Stride: the number of bytes to advance in the flat buffer to move one step along an axis.
//   - Back-stride: the (negative) number of bytes to go back when an axis wraps from its last
//     index to 0.
//
// Example: the multi-dimensional array `[][]int32{{0, 1, 2}, {3, 4, 5}}` has shape `(Int32)[2 3]`:
// rank 2, axis 0 has dimension 2 and axis 1 has dimension 3. Its strides are [12 4] and its
// back-strides are [-12 -8].
package shapes

import (
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/ndarray/pkg/support/xslices"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidShape is returned when a shape has rank 0, a dimension <= 0, a rank that doesn't
	// match the number of dimensions given, or a number of elements that overflows int.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrBroadcastIncompatible is returned when two shapes can't be broadcast to a common shape.
	ErrBroadcastIncompatible = errors.New("shapes are not broadcast compatible")
)

// Shape represents the shape of a dense array: the dtype of its elements and the dimension of
// each of its axes.
//
// Use Make to create a validated shape.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a validated Shape with the given dtype and dimensions.
//
// It returns an error wrapping ErrInvalidShape if no dimensions are given, if any dimension is
// <= 0, or if the number of elements, the size in bytes or the size of the index tables
// (see EnumerateCoordinates) overflows an int.
func Make(dtype dtypes.DType, dimensions ...int) (Shape, error) {
	if err := CheckDimensions(dimensions); err != nil {
		return Shape{}, err
	}
	if err := checkMemory(dtype, dimensions); err != nil {
		return Shape{}, err
	}
	return Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}, nil
}

// intSize is the size in bytes of an int.
const intSize = bits.UintSize / 8

// checkMemory validates that the buffer of the given validated dimensions, and the coordinate
// table of size*rank ints, can be addressed in bytes by an int.
func checkMemory(dtype dtypes.DType, dimensions []int) error {
	size := xslices.Product(dimensions)
	if itemSize := int(dtype.Memory()); itemSize > 0 && size > math.MaxInt/itemSize {
		return errors.Wrapf(ErrInvalidShape, "size in bytes of shape (%s)%v overflows int", dtype, dimensions)
	}
	if size > math.MaxInt/(len(dimensions)*intSize) {
		return errors.Wrapf(ErrInvalidShape, "index tables of dimensions %v overflow int", dimensions)
	}
	return nil
}

// MustMake is like Make, but panics if the shape is invalid.
//
// Only use it for shapes known to be valid, like constants or shapes used in tests.
func MustMake(dtype dtypes.DType, dimensions ...int) Shape {
	s, err := Make(dtype, dimensions...)
	if err != nil {
		exceptions.Panicf("shapes.MustMake(%s, %v): %v", dtype, dimensions, err)
	}
	return s
}

// CheckDimensions validates a list of dimensions: at least one axis, all dimensions > 0 and a
// total number of elements that fits an int.
func CheckDimensions(dimensions []int) error {
	if len(dimensions) == 0 {
		return errors.Wrap(ErrInvalidShape, "shape must have at least one axis")
	}
	size := 1
	for axis, dim := range dimensions {
		if dim <= 0 {
			return errors.Wrapf(ErrInvalidShape, "axis %d has dimension %d, dimensions must be > 0 (dimensions=%v)",
				axis, dim, dimensions)
		}
		if size > math.MaxInt/dim {
			return errors.Wrapf(ErrInvalidShape, "number of elements of dimensions %v overflows int", dimensions)
		}
		size *= dim
	}
	return nil
}

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s.Dimensions) }

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Size returns the number of elements of DType needed for this shape. It's the product of all dimensions.
func (s Shape) Size() int {
	return xslices.Product(s.Dimensions)
}

// ItemSize returns the number of bytes of one element of the shape's DType.
func (s Shape) ItemSize() int {
	return int(s.DType.Memory())
}

// Memory returns the memory used to store an array of the given shape, the same as the size in bytes.
func (s Shape) Memory() uintptr {
	return s.DType.Memory() * uintptr(s.Size())
}

// String implements fmt.Stringer, pretty-prints the shape.
func (s Shape) String() string {
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}

// Equal compares two shapes for equality: dtype and dimensions are compared.
func (s Shape) Equal(s2 Shape) bool {
	return s.DType == s2.DType && slices.Equal(s.Dimensions, s2.Dimensions)
}

// EqualDimensions compares two shapes for equality of dimensions. Dtypes can be different.
func (s Shape) EqualDimensions(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}
