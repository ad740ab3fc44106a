// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"reflect"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/ndarray/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Number is the constraint of the element types supported by Array: all Go integer and float
// types, except complex numbers.
type Number interface {
	dtypes.NumberNotComplex
}

// ArrayIndices holds every coordinate tuple of an array, in row-major order: the last axis
// changes fastest.
type ArrayIndices struct {
	Indices [][]int
	Count   int
}

// LinearIndices holds, for each coordinate tuple of an ArrayIndices (in the same order), the
// position of the element in the flat buffer.
type LinearIndices struct {
	Indices []int
	Count   int
}

// Array is a dense N-dimensional array of elements of type T.
//
// The dimensional metadata (shape, strides, index tables) is fixed at creation. Only the
// contents of the flat buffer can change. Arrays never share buffers.
type Array[T Number] struct {
	shape       shapes.Shape
	flat        []T
	strides     []int
	backStrides []int
	itemSize    int

	indices ArrayIndices
	linear  LinearIndices

	cOrder, fOrder bool
}

// DTypeOf returns the dtype corresponding to the Go type T.
func DTypeOf[T Number]() dtypes.DType {
	return dtypes.FromGoType(reflect.TypeFor[T]())
}

// Create returns a zero-filled array with the given dimensions. ndim is the expected rank and
// must match len(dimensions).
//
// It returns an error wrapping ErrInvalidShape if ndim is 0, if it doesn't match the number of
// dimensions or if any dimension is <= 0.
func Create[T Number](dimensions []int, ndim int) (*Array[T], error) {
	if ndim != len(dimensions) {
		return nil, errors.Wrapf(ErrInvalidShape, "ndarray.Create(%v, ndim=%d): ndim must match the number of dimensions",
			dimensions, ndim)
	}
	shape, err := shapes.Make(DTypeOf[T](), dimensions...)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.Create(%v, ndim=%d)", dimensions, ndim)
	}
	return newArray[T](shape), nil
}

// New returns a zero-filled array with the given dimensions. See Create.
func New[T Number](dimensions ...int) (*Array[T], error) {
	return Create[T](dimensions, len(dimensions))
}

// FromFlat returns an array with the given dimensions holding a copy of flat, in row-major order.
//
// It returns an error wrapping ErrInvalidReshape if len(flat) is not the number of elements of
// the dimensions.
func FromFlat[T Number](flat []T, dimensions ...int) (*Array[T], error) {
	shape, err := shapes.Make(DTypeOf[T](), dimensions...)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.FromFlat(len=%d, %v)", len(flat), dimensions)
	}
	if shape.Size() != len(flat) {
		return nil, errors.Wrapf(ErrInvalidReshape, "ndarray.FromFlat: %d values given for dimensions %v (%d elements)",
			len(flat), dimensions, shape.Size())
	}
	a := newArray[T](shape)
	copy(a.flat, flat)
	return a, nil
}

// newArray allocates a zero-filled array and its index geometry for a validated shape.
func newArray[T Number](shape shapes.Shape) *Array[T] {
	if shape.Rank() == 0 {
		exceptions.Panicf("ndarray: newArray called with an unvalidated shape %s", shape)
	}
	itemSize := shape.ItemSize()
	strides := shapes.ComputeStrides(shape.Dimensions, itemSize)
	size := shape.Size()
	rank := shape.Rank()
	return &Array[T]{
		shape:       shape,
		flat:        make([]T, size),
		strides:     strides,
		backStrides: shapes.ComputeBackStrides(shape.Dimensions, strides),
		itemSize:    itemSize,
		indices: ArrayIndices{
			Indices: shapes.EnumerateCoordinates(shape.Dimensions),
			Count:   size,
		},
		linear: LinearIndices{
			Indices: shapes.LinearOffsets(shape.Dimensions, strides, itemSize),
			Count:   size,
		},
		cOrder: strides[rank-1] == itemSize,
		fOrder: strides[0] == itemSize,
	}
}

// Shape returns a copy of the shape of the array.
func (a *Array[T]) Shape() shapes.Shape { return a.shape.Clone() }

// DType of the elements of the array.
func (a *Array[T]) DType() dtypes.DType { return a.shape.DType }

// Dimensions returns a copy of the dimensions of the array.
func (a *Array[T]) Dimensions() []int { return slices.Clone(a.shape.Dimensions) }

// Dim returns the dimension of the given axis, negative axes count from the end. It panics for an
// out-of-bound axis, like Shape.Dim.
func (a *Array[T]) Dim(axis int) int { return a.shape.Dim(axis) }

// Strides returns a copy of the strides of the array, in bytes.
func (a *Array[T]) Strides() []int { return slices.Clone(a.strides) }

// BackStrides returns a copy of the back-strides of the array, in bytes.
func (a *Array[T]) BackStrides() []int { return slices.Clone(a.backStrides) }

// Rank is the number of axes of the array.
func (a *Array[T]) Rank() int { return a.shape.Rank() }

// ItemSize is the size in bytes of one element.
func (a *Array[T]) ItemSize() int { return a.itemSize }

// Size is the number of elements of the array.
func (a *Array[T]) Size() int { return len(a.flat) }

// Memory is the size in bytes of the flat buffer.
func (a *Array[T]) Memory() uintptr { return a.shape.Memory() }

// Indices returns the table of all coordinate tuples of the array.
//
// The table is owned by the array and must not be modified.
func (a *Array[T]) Indices() ArrayIndices { return a.indices }

// LinearIndices returns the flat positions of each coordinate tuple of Indices.
//
// The table is owned by the array and must not be modified.
func (a *Array[T]) LinearIndices() LinearIndices { return a.linear }

// IsCContiguous returns whether the last axis is contiguous in memory (row-major layout).
func (a *Array[T]) IsCContiguous() bool { return a.cOrder }

// IsFContiguous returns whether the first axis is contiguous in memory (column-major layout).
// It only holds for rank-1 arrays and arrays whose trailing dimensions are all 1.
func (a *Array[T]) IsFContiguous() bool { return a.fOrder }

// Flat returns the flat buffer of the array, in row-major order.
//
// The slice is owned by the array: changing its values changes the array.
func (a *Array[T]) Flat() []T { return a.flat }

// offset returns the position in the flat buffer of the element at the given coordinates.
func (a *Array[T]) offset(coords []int) (int, error) {
	if len(coords) != a.Rank() {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "%d coordinates given for array of shape %s", len(coords), a.shape)
	}
	offset := 0
	for axis, coord := range coords {
		if coord < 0 || coord >= a.shape.Dimensions[axis] {
			return 0, errors.Wrapf(ErrIndexOutOfRange, "coordinate %d of axis %d out of range for array of shape %s",
				coord, axis, a.shape)
		}
		offset += coord * a.strides[axis]
	}
	return offset / a.itemSize, nil
}

// At returns the element at the given coordinates.
// It returns an error wrapping ErrIndexOutOfRange if the coordinates are invalid.
func (a *Array[T]) At(coords ...int) (T, error) {
	offset, err := a.offset(coords)
	if err != nil {
		var zero T
		return zero, errors.WithMessage(err, "Array.At")
	}
	return a.flat[offset], nil
}

// Set changes the element at the given coordinates.
// It returns an error wrapping ErrIndexOutOfRange if the coordinates are invalid.
func (a *Array[T]) Set(value T, coords ...int) error {
	offset, err := a.offset(coords)
	if err != nil {
		return errors.WithMessage(err, "Array.Set")
	}
	a.flat[offset] = value
	return nil
}

// Clone returns a deep copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	c := newArray[T](a.shape.Clone())
	copy(c.flat, a.flat)
	return c
}

// Equal returns whether both arrays have the same shape and the same values.
func (a *Array[T]) Equal(other *Array[T]) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.shape.Equal(other.shape) && slices.Equal(a.flat, other.flat)
}

// checkOperands returns an error if any of the operands is nil.
func checkOperands[T Number](opName string, operands ...*Array[T]) error {
	for ii, operand := range operands {
		if operand == nil {
			return errors.Wrapf(ErrNilArray, "ndarray.%s: operand #%d is nil", opName, ii)
		}
	}
	return nil
}
