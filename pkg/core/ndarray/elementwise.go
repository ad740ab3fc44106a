// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"github.com/gomlx/ndarray/pkg/core/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// binaryOpFn is the scalar function applied by an elementwise binary operation.
type binaryOpFn[T Number] func(x, y T) T

// Add returns the elementwise sum a+b, broadcasting the operands to a common shape if needed.
//
// It returns an error wrapping ErrBroadcastIncompatible if the shapes can't be broadcast.
//
// Example:
//
//	Add([[1 2 3] [4 5 6]], [1 2 3]) → [[2 4 6] [5 7 9]]
func Add[T Number](a, b *Array[T]) (*Array[T], error) {
	return binaryOp("Add", a, b, func(x, y T) T { return x + y })
}

// Multiply returns the elementwise product a*b, broadcasting the operands to a common shape if
// needed.
//
// It returns an error wrapping ErrBroadcastIncompatible if the shapes can't be broadcast.
func Multiply[T Number](a, b *Array[T]) (*Array[T], error) {
	return binaryOp("Multiply", a, b, func(x, y T) T { return x * y })
}

// binaryOp implements the elementwise binary operations.
//
// Operands of the same shape are combined directly through their linear index tables. Otherwise,
// both operands are broadcast to the common shape and combined position by position.
func binaryOp[T Number](opName string, a, b *Array[T], op binaryOpFn[T]) (*Array[T], error) {
	if err := checkOperands(opName, a, b); err != nil {
		return nil, err
	}
	if a.shape.EqualDimensions(b.shape) {
		klog.V(2).Infof("ndarray.%s: same shape %s", opName, a.shape)
		result := newArray[T](a.shape.Clone())
		aLinear, bLinear := a.linear.Indices, b.linear.Indices
		parallelFor(result.Size(), func(start, end int) {
			for ii := start; ii < end; ii++ {
				result.flat[ii] = op(a.flat[aLinear[ii]], b.flat[bLinear[ii]])
			}
		})
		return result, nil
	}

	shape, err := shapes.BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.%s(%s, %s)", opName, a.shape, b.shape)
	}
	klog.V(2).Infof("ndarray.%s: broadcasting %s and %s to %s", opName, a.shape, b.shape, shape)
	aFull, bFull := broadcastArray(a, shape), broadcastArray(b, shape)
	result := newArray[T](shape)
	parallelFor(result.Size(), func(start, end int) {
		for ii := start; ii < end; ii++ {
			result.flat[ii] = op(aFull.flat[ii], bFull.flat[ii])
		}
	})
	return result, nil
}
