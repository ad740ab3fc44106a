// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"slices"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestShape_Iter(t *testing.T) {
	// Version 1: there is only one value to iterate:
	shape := MustMake(dtypes.Float32, 1, 1, 1, 1)
	collect := make([][]int, 0, shape.Size())
	for _, indices := range shape.Iter() {
		collect = append(collect, slices.Clone(indices))
	}
	require.Equal(t, [][]int{{0, 0, 0, 0}}, collect)

	// Version 2: all axes have dimension > 1.
	shape = MustMake(dtypes.Float64, 3, 2)
	collect = make([][]int, 0, shape.Size())
	var flatIndices []int
	for flatIdx, indices := range shape.Iter() {
		collect = append(collect, slices.Clone(indices))
		flatIndices = append(flatIndices, flatIdx)
	}
	want := [][]int{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
		{2, 0},
		{2, 1},
	}
	require.Equal(t, want, collect)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, flatIndices)

	// Version 3: with axes of dimension 1 interleaved.
	shape = MustMake(dtypes.Int32, 3, 1, 2, 1)
	collect = make([][]int, 0, shape.Size())
	for _, indices := range shape.Iter() {
		collect = append(collect, slices.Clone(indices))
	}
	want = [][]int{
		{0, 0, 0, 0},
		{0, 0, 1, 0},
		{1, 0, 0, 0},
		{1, 0, 1, 0},
		{2, 0, 0, 0},
		{2, 0, 1, 0},
	}
	require.Equal(t, want, collect)

	// Early termination.
	count := 0
	for range shape.Iter() {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestShape_IterOnAxes(t *testing.T) {
	shape := MustMake(dtypes.Float32, 2, 3, 4)
	indices := make([]int, shape.Rank())
	indices[1] = 1 // Fixed middle axis.
	var flatIndices []int
	var collect [][]int
	for flatIdx, idx := range shape.IterOnAxes([]int{0, 2}, nil, indices) {
		flatIndices = append(flatIndices, flatIdx)
		collect = append(collect, slices.Clone(idx))
	}
	require.Equal(t, []int{4, 5, 6, 7, 16, 17, 18, 19}, flatIndices)
	require.Equal(t, []int{0, 1, 0}, collect[0])
	require.Equal(t, []int{1, 1, 3}, collect[7])

	require.Panics(t, func() {
		for range shape.IterOnAxes([]int{3}, nil, nil) {
		}
	})
}

func TestEnumerateCoordinates(t *testing.T) {
	got := EnumerateCoordinates([]int{2, 3})
	require.Equal(t, [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, got)
	require.Len(t, EnumerateCoordinates([]int{4, 1, 5}), 20)
	require.Equal(t, [][]int{{0}, {1}, {2}}, EnumerateCoordinates([]int{3}))

	// Tuples must not share memory beyond their own length.
	got[0] = append(got[0], 7)
	require.Equal(t, []int{0, 1}, got[1])
}

func TestLinearOffsets(t *testing.T) {
	dims := []int{2, 3}
	strides := ComputeStrides(dims, 4)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, LinearOffsets(dims, strides, 4))

	// Column-major strides map the row-major enumeration to transposed offsets.
	fStrides := []int{8, 16} // Float64: axis 0 moves 1 element, axis 1 moves 2 elements.
	require.Equal(t, []int{0, 2, 4, 1, 3, 5}, LinearOffsets(dims, fStrides, 8))

	require.Panics(t, func() { _ = LinearOffsets(dims, []int{4}, 4) })
}
