// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"github.com/gomlx/ndarray/pkg/core/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ReshapeCopy returns a new array with the given dimensions and a copy of the elements of a, in
// row-major order. ndim is the expected rank and must match len(dimensions).
//
// It returns an error wrapping ErrInvalidShape if the dimensions are invalid, or wrapping
// ErrInvalidReshape if the new number of elements differs from a.Size().
func ReshapeCopy[T Number](a *Array[T], dimensions []int, ndim int) (*Array[T], error) {
	if err := checkOperands("ReshapeCopy", a); err != nil {
		return nil, err
	}
	if ndim != len(dimensions) {
		return nil, errors.Wrapf(ErrInvalidShape, "ndarray.ReshapeCopy(%s, %v, ndim=%d): ndim must match the number of dimensions",
			a.shape, dimensions, ndim)
	}
	shape, err := shapes.Make(a.shape.DType, dimensions...)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.ReshapeCopy(%s, %v)", a.shape, dimensions)
	}
	if shape.Size() != a.Size() {
		return nil, errors.Wrapf(ErrInvalidReshape, "ndarray.ReshapeCopy(%s, %v): %d elements can't be reshaped to %d elements",
			a.shape, dimensions, a.Size(), shape.Size())
	}
	result := newArray[T](shape)
	klog.V(2).Infof("ndarray.ReshapeCopy: %s -> %s", a.shape, shape)
	parallelFor(result.Size(), func(start, end int) {
		copy(result.flat[start:end], a.flat[start:end])
	})
	return result, nil
}

// Reshape is like ReshapeCopy, with the rank taken from the number of dimensions.
func Reshape[T Number](a *Array[T], dimensions ...int) (*Array[T], error) {
	return ReshapeCopy(a, dimensions, len(dimensions))
}
