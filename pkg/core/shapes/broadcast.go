// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"github.com/pkg/errors"
)

// PadLeft returns a copy of dimensions prepended with axes of dimension 1, so it has the given rank.
// If rank <= len(dimensions) it returns a plain copy.
func PadLeft(dimensions []int, rank int) []int {
	if rank < len(dimensions) {
		rank = len(dimensions)
	}
	padded := make([]int, rank)
	prepend := rank - len(dimensions)
	for axis := range prepend {
		padded[axis] = 1
	}
	copy(padded[prepend:], dimensions)
	return padded
}

// BroadcastDimensions implements NumPy-style broadcasting of two lists of dimensions.
//
// The dimensions are right-aligned, and the shorter one is padded on the left with 1s. For each
// aligned axis the result dimension is the common dimension if they are equal, or the other one if
// either is 1. Otherwise, it returns an error wrapping ErrBroadcastIncompatible.
//
// Examples:
//
//	[3, 1] and [3, 5] → [3, 5]
//	[5] and [2, 1] → [2, 5]
//	[2, 3] and [4, 5] → ErrBroadcastIncompatible
func BroadcastDimensions(a, b []int) ([]int, error) {
	rank := max(len(a), len(b))
	paddedA, paddedB := PadLeft(a, rank), PadLeft(b, rank)
	result := make([]int, rank)
	for axis := range rank {
		aDim, bDim := paddedA[axis], paddedB[axis]
		switch {
		case aDim == bDim:
			result[axis] = aDim
		case aDim == 1:
			result[axis] = bDim
		case bDim == 1:
			result[axis] = aDim
		default:
			return nil, errors.Wrapf(ErrBroadcastIncompatible, "dimensions %v and %v (aligned axis %d: %d vs %d)",
				a, b, axis, aDim, bDim)
		}
	}
	return result, nil
}

// BroadcastShapes returns the shape resulting from broadcasting a and b, see BroadcastDimensions.
// Both shapes must have the same DType.
func BroadcastShapes(a, b Shape) (Shape, error) {
	if a.DType != b.DType {
		return Shape{}, errors.Wrapf(ErrBroadcastIncompatible, "shapes %s and %s have different dtypes", a, b)
	}
	dims, err := BroadcastDimensions(a.Dimensions, b.Dimensions)
	if err != nil {
		return Shape{}, err
	}
	return Shape{DType: a.DType, Dimensions: dims}, nil
}
