// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"bytes"
	"fmt"
	"strings"
)

// StringDefaultPrecision is the precision of floating point values used by Array.String.
const StringDefaultPrecision = 4

// summaryEdgeItems is the number of items printed at each edge of an axis that is elided.
const summaryEdgeItems = 3

// String implements fmt.Stringer. It uses Summary(StringDefaultPrecision).
func (a *Array[T]) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.Summary(StringDefaultPrecision)
}

// Summary returns a multi-line rendering of the array contents, NumPy style: axes with more than
// 6 entries only show the first and last 3, separated by "...".
//
// Floating point values are printed with the given number of significant digits.
//
// Example for Arange[float32](1, 7, 1) reshaped to [2, 3]:
//
//	[2][3]float32{
//	 {1, 2, 3},
//	 {4, 5, 6}}
func (a *Array[T]) Summary(precision int) string {
	var buf bytes.Buffer
	w := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }

	var zero T
	_, isFloat := any(zero).(float32)
	if _, ok := any(zero).(float64); ok {
		isFloat = true
	}
	wValue := func(v T) {
		if isFloat {
			w("%.*g", precision, v)
		} else {
			w("%d", v)
		}
	}

	dims := a.shape.Dimensions
	rank := len(dims)
	for _, dim := range dims {
		w("[%d]", dim)
	}
	w("%T", zero)

	var printAxis func(axis, offset int)
	printAxis = func(axis, offset int) {
		dim := dims[axis]
		stride := a.strides[axis] / a.itemSize
		elided := dim > 2*summaryEdgeItems
		w("{")
		if axis == 0 && rank > 1 {
			w("\n ")
		}
		indentStr := strings.Repeat(" ", axis+1)
		for ii := 0; ii < dim; ii++ {
			if elided && ii == summaryEdgeItems {
				if axis == rank-1 {
					w("..., ")
				} else {
					w("...,\n%s", indentStr)
				}
				ii = dim - summaryEdgeItems
			}
			if axis == rank-1 {
				wValue(a.flat[offset+ii*stride])
			} else {
				printAxis(axis+1, offset+ii*stride)
			}
			if ii < dim-1 {
				if axis == rank-1 {
					w(", ")
				} else {
					w(",\n%s", indentStr)
				}
			}
		}
		w("}")
	}
	printAxis(0, 0)
	return buf.String()
}

// Info returns a description of the layout of the array: dimensions, strides and contiguity.
func (a *Array[T]) Info() string {
	return fmt.Sprintf("Shape: %v\nStrides: %v\nArray is C-contiguous? %t\nArray is F-contiguous? %t",
		a.shape.Dimensions, a.strides, a.cOrder, a.fOrder)
}
