// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

// ComputeStrides returns the strides for each axis of the given dimensions, assuming a "row-major"
// (C) layout in memory, the only layout arrays are created with.
//
// Notice the strides are **in bytes**: the last axis has stride itemSize, and each preceding
// axis has the stride of the next axis times the next axis dimension.
func ComputeStrides(dimensions []int, itemSize int) (strides []int) {
	rank := len(dimensions)
	if rank == 0 {
		return
	}
	strides = make([]int, rank)
	strides[rank-1] = itemSize
	for axis := rank - 2; axis >= 0; axis-- {
		strides[axis] = strides[axis+1] * dimensions[axis+1]
	}
	return
}

// ComputeBackStrides returns, for each axis, the offset (in bytes, always <= 0) to apply when
// the axis index wraps from its last value back to 0: -strides[axis] * (dimensions[axis]-1).
func ComputeBackStrides(dimensions, strides []int) (backStrides []int) {
	backStrides = make([]int, len(dimensions))
	for axis := len(dimensions) - 1; axis >= 0; axis-- {
		backStrides[axis] = -strides[axis] * (dimensions[axis] - 1)
	}
	return
}

// Strides returns the row-major strides in bytes of the shape. See ComputeStrides.
func (s Shape) Strides() []int {
	return ComputeStrides(s.Dimensions, s.ItemSize())
}

// BackStrides returns the back-strides in bytes of the shape. See ComputeBackStrides.
func (s Shape) BackStrides() []int {
	return ComputeBackStrides(s.Dimensions, s.Strides())
}

// ElementStrides returns the row-major strides of the shape in number of elements (not bytes).
func (s Shape) ElementStrides() []int {
	return ComputeStrides(s.Dimensions, 1)
}
