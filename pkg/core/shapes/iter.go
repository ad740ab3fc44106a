// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"iter"

	"github.com/pkg/errors"
)

// Iter iterates sequentially over all possible indices of the given shape, in row-major order:
// the last axis changes fastest.
//
// It yields the flat index (counter) and a slice of indices for each axis.
//
// To avoid allocating the slice of indices, the yielded indices is owned by the Iter() method:
// don't change it inside the loop.
func (s Shape) Iter() iter.Seq2[int, []int] {
	indices := make([]int, s.Rank())
	return s.IterOn(indices)
}

// IterOn iterates over all possible indices of the given shape, like Iter.
//
// The iteration updates the indices on the given indices slice.
// During the iteration the caller shouldn't modify the slice of indices, otherwise it will lead to undefined behavior.
//
// It expects len(indices) == s.Rank(). It will panic otherwise.
func (s Shape) IterOn(indices []int) iter.Seq2[int, []int] {
	if len(indices) != s.Rank() {
		panic(errors.Errorf("Shape.IterOn given len(indices) == %d, want it to be equal to the rank %d", len(indices), s.Rank()))
	}
	return func(yield func(int, []int) bool) {
		rank := s.Rank()
		if rank == 0 {
			return
		}
		// shapes.Make prevents non-positive dimensions, but a literal Shape{} may have them.
		for _, dimSize := range s.Dimensions {
			if dimSize <= 0 {
				return
			}
		}
		for i := range indices {
			indices[i] = 0
		}

		// Loop until all indices are generated: an N-dimensional counter (odometer).
		flatIdx := 0
	yielder:
		for {
			if !yield(flatIdx, indices) {
				return
			}
			flatIdx++

			// Increment the last axis; on overflow reset it to 0 and carry into the axis to its left.
			for axis := rank - 1; axis >= 0; axis-- {
				if s.Dimensions[axis] == 1 {
					continue
				}
				indices[axis]++
				if indices[axis] < s.Dimensions[axis] {
					continue yielder
				}
				indices[axis] = 0
			}

			// The first axis also overflowed: iteration is complete.
			break
		}
	}
}

// IterOnAxes iterates over all possible indices of the given shape's axesToIterate, in row-major
// order among those axes.
//
// It yields the flat index (computed with the given strides) and the updated indices for all axes
// of the shape (not only the ones in axesToIterate). The indices not pointed by axesToIterate are
// not touched, but they are used to calculate the flat index.
//
// Args:
//   - axesToIterate: axes of the shape to iterate over. They must be 0 <= axis < rank.
//   - strides: per-axis strides used to compute the yielded flat index. If nil, it uses Shape.ElementStrides.
//     If provided, it expects len(strides) == s.Rank(). It will panic otherwise.
//   - indices: slice that will be yielded during the iteration, it must have length equal to the shape's rank.
//     If it is nil, one will be allocated for the iteration.
//
// During the iteration the caller shouldn't modify the slice of indices, otherwise it will lead to undefined behavior.
func (s Shape) IterOnAxes(axesToIterate, strides, indices []int) iter.Seq2[int, []int] {
	rank := s.Rank()
	if strides == nil {
		strides = s.ElementStrides()
	} else if len(strides) != rank {
		panic(errors.Errorf("Shape.IterOnAxes given len(strides) == %d, want it to be equal to the rank %d", len(strides), rank))
	}
	if indices == nil {
		indices = make([]int, rank)
	} else if len(indices) != rank {
		panic(errors.Errorf("Shape.IterOnAxes given len(indices) == %d, want it to be equal to the rank %d", len(indices), rank))
	}

	return func(yield func(int, []int) bool) {
		for _, axis := range axesToIterate {
			if axis < 0 || axis >= rank {
				panic(errors.Errorf("Shape.IterOnAxes: invalid axis %d, must be 0 <= axis < rank (%d)", axis, rank))
			}
			if s.Dimensions[axis] <= 0 {
				return
			}
			indices[axis] = 0
		}

		flatIdx := 0
		for axis := range rank {
			flatIdx += indices[axis] * strides[axis]
		}

	yielder:
		for {
			if !yield(flatIdx, indices) {
				return
			}
			for axisIdx := len(axesToIterate) - 1; axisIdx >= 0; axisIdx-- {
				axis := axesToIterate[axisIdx]
				indices[axis]++
				flatIdx += strides[axis]
				if indices[axis] < s.Dimensions[axis] {
					continue yielder
				}
				flatIdx -= indices[axis] * strides[axis]
				indices[axis] = 0
			}
			break
		}
	}
}

// EnumerateCoordinates returns the complete ordered enumeration of coordinate tuples for the
// given dimensions, in row-major order (last axis fastest). There are ∏dimensions tuples, each
// of length len(dimensions).
//
// The dimensions are expected to be valid (see CheckDimensions).
func EnumerateCoordinates(dimensions []int) [][]int {
	s := Shape{Dimensions: dimensions}
	rank := len(dimensions)
	coordinates := make([][]int, s.Size())
	// One backing allocation for all the tuples.
	backing := make([]int, len(coordinates)*rank)
	for flatIdx, indices := range s.Iter() {
		tuple := backing[flatIdx*rank : (flatIdx+1)*rank : (flatIdx+1)*rank]
		copy(tuple, indices)
		coordinates[flatIdx] = tuple
	}
	return coordinates
}

// LinearOffsets returns, for each coordinate tuple in the order of EnumerateCoordinates, the linear
// offset in elements (not bytes) into the flat buffer: Σ coord[axis]*strides[axis] / itemSize.
//
// The strides are in bytes, as returned by ComputeStrides.
func LinearOffsets(dimensions, strides []int, itemSize int) []int {
	if len(strides) != len(dimensions) {
		panic(errors.Errorf("shapes.LinearOffsets given %d strides for %d dimensions", len(strides), len(dimensions)))
	}
	s := Shape{Dimensions: dimensions}
	offsets := make([]int, s.Size())
	for flatIdx, indices := range s.Iter() {
		offset := 0
		for axis, idx := range indices {
			offset += idx * strides[axis]
		}
		offsets[flatIdx] = offset / itemSize
	}
	return offsets
}
