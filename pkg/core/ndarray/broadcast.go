// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"slices"

	"github.com/gomlx/ndarray/pkg/core/shapes"
	"github.com/pkg/errors"
)

// BroadcastTo returns a new array with the given dimensions, with the values of a replicated
// along the axes it is broadcast over.
//
// a is broadcast following NumPy rules: its dimensions are right-aligned with the target
// dimensions, missing leading axes are added with dimension 1, and every axis of dimension 1 is
// replicated. The target can't have fewer axes than a, and each aligned axis of a must be 1 or
// equal to the target dimension, otherwise it returns an error wrapping ErrBroadcastIncompatible.
//
// Example:
//
//	BroadcastTo([1 2 3], 2, 3) → [[1 2 3] [1 2 3]]
func BroadcastTo[T Number](a *Array[T], dimensions ...int) (*Array[T], error) {
	if err := checkOperands("BroadcastTo", a); err != nil {
		return nil, err
	}
	shape, err := shapes.Make(a.shape.DType, dimensions...)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.BroadcastTo(%s, %v)", a.shape, dimensions)
	}
	broadcastDims, err := shapes.BroadcastDimensions(a.shape.Dimensions, dimensions)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.BroadcastTo(%s, %v)", a.shape, dimensions)
	}
	if !slices.Equal(broadcastDims, dimensions) {
		return nil, errors.Wrapf(ErrBroadcastIncompatible, "ndarray.BroadcastTo(%s, %v): array would be broadcast to %v",
			a.shape, dimensions, broadcastDims)
	}
	return broadcastArray(a, shape), nil
}

// broadcastArray materializes a broadcast to the given shape, which must be a valid broadcast of
// a.shape.
//
// For each coordinate of the output, the source element is at the coordinate taken modulo the
// dimension of each aligned axis of a, so axes of dimension 1 always read index 0.
func broadcastArray[T Number](a *Array[T], shape shapes.Shape) *Array[T] {
	result := newArray[T](shape)
	numPrepend := shape.Rank() - a.Rank()
	srcDims := a.shape.Dimensions
	parallelFor(result.Size(), func(start, end int) {
		for ii := start; ii < end; ii++ {
			coords := result.indices.Indices[ii]
			srcOffset := 0
			for axis, dim := range srcDims {
				srcOffset += (coords[numPrepend+axis] % dim) * a.strides[axis]
			}
			result.flat[result.linear.Indices[ii]] = a.flat[srcOffset/a.itemSize]
		}
	})
	return result
}
