// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"github.com/gomlx/ndarray/pkg/core/shapes"
	"github.com/gomlx/ndarray/pkg/support/xslices"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// MatMul returns the matrix product of a and b, batched over their leading axes.
//
// The last two axes of each operand are the matrices: a is [..., m, n] and b is [..., n, p]. The
// leading (batch) axes are broadcast following NumPy rules (right-aligned, axes of dimension 1
// replicated), and the result has dimensions [batch..., m, p].
//
// Each output element is the sum over k (in increasing order) of a[..., i, k] * b[..., k, j].
//
// It returns an error wrapping ErrRankTooLow if any operand has rank < 2, or wrapping
// ErrDimensionMismatch if the contracting dimensions differ or the batch axes can't be broadcast.
//
// Example:
//
//	MatMul([[1 2] [3 4]], [[5 6] [7 8]]) → [[19 22] [43 50]]
func MatMul[T Number](a, b *Array[T]) (*Array[T], error) {
	if err := checkOperands("MatMul", a, b); err != nil {
		return nil, err
	}
	if a.Rank() < 2 || b.Rank() < 2 {
		return nil, errors.Wrapf(ErrRankTooLow, "ndarray.MatMul(%s, %s): operands must have rank >= 2", a.shape, b.shape)
	}
	m, n := a.Dim(-2), a.Dim(-1)
	bN, p := b.Dim(-2), b.Dim(-1)
	if n != bN {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"ndarray.MatMul(%s, %s): contracting dimensions don't match (a.Dim(-1)=%d, b.Dim(-2)=%d)",
			a.shape, b.shape, n, bN)
	}
	aBatchDims := a.shape.Dimensions[:a.Rank()-2]
	bBatchDims := b.shape.Dimensions[:b.Rank()-2]
	batchDims, err := shapes.BroadcastDimensions(aBatchDims, bBatchDims)
	if err != nil {
		return nil, errors.Wrapf(ErrDimensionMismatch, "ndarray.MatMul(%s, %s): batch axes: %v", a.shape, b.shape, err)
	}

	outputDims := make([]int, 0, len(batchDims)+2)
	outputDims = append(outputDims, batchDims...)
	outputDims = append(outputDims, m, p)
	shape, err := shapes.Make(a.shape.DType, outputDims...)
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.MatMul(%s, %s)", a.shape, b.shape)
	}
	result := newArray[T](shape)

	// Offsets (in elements) of the first element of each matrix, per batch position.
	aBatchOffsets := batchOffsets(a, batchDims)
	bBatchOffsets := batchOffsets(b, batchDims)
	resultBatchOffsets := batchOffsets(result, batchDims)
	numBatches := len(resultBatchOffsets)
	klog.V(2).Infof("ndarray.MatMul(%s, %s): %d batch(es) of [%d, %d]x[%d, %d]", a.shape, b.shape, numBatches, m, n, n, p)

	aRowStride, aColStride := elementStride(a, -2), elementStride(a, -1)
	bRowStride, bColStride := elementStride(b, -2), elementStride(b, -1)
	resultRowStride, resultColStride := elementStride(result, -2), elementStride(result, -1)

	// Each row of each output matrix is computed independently.
	parallelFor(numBatches*m, func(start, end int) {
		for row := start; row < end; row++ {
			batchIdx, i := row/m, row%m
			aRow := aBatchOffsets[batchIdx] + i*aRowStride
			resultRow := resultBatchOffsets[batchIdx] + i*resultRowStride
			for j := range p {
				bCol := bBatchOffsets[batchIdx] + j*bColStride
				var sum T
				for k := range n {
					sum += a.flat[aRow+k*aColStride] * b.flat[bCol+k*bRowStride]
				}
				result.flat[resultRow+j*resultColStride] = sum
			}
		}
	})
	return result, nil
}

// elementStride returns the stride of the axis in number of elements. Negative axes count from the end.
func elementStride[T Number](a *Array[T], axis int) int {
	return xslices.At(a.strides, axis) / a.itemSize
}

// batchOffsets returns, for each position of the batch axes (in row-major order), the offset in
// elements of the corresponding matrix of a.
//
// The batch axes of a (all but the last two) are right-aligned with batchDims. Missing axes and
// axes of dimension 1 get a stride of 0, so they always use index 0. If there are no batch axes,
// there is one matrix at offset 0.
func batchOffsets[T Number](a *Array[T], batchDims []int) []int {
	if len(batchDims) == 0 {
		return []int{0}
	}
	operandBatchDims := a.shape.Dimensions[:a.Rank()-2]
	numPrepend := len(batchDims) - len(operandBatchDims)
	strides := make([]int, len(batchDims))
	for axis, dim := range operandBatchDims {
		if dim != 1 {
			strides[numPrepend+axis] = a.strides[axis]
		}
	}
	batchShape := shapes.Shape{DType: a.shape.DType, Dimensions: batchDims}
	offsets := make([]int, 0, batchShape.Size())
	for offset := range batchShape.IterOnAxes(xslices.Iota(0, len(batchDims)), strides, nil) {
		offsets = append(offsets, offset/a.itemSize)
	}
	return offsets
}
