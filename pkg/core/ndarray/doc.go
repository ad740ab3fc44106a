// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package ndarray implements a minimal N-dimensional dense array engine.
//
// An Array[T] owns a flat buffer of elements of type T laid out in row-major (C) order, and
// carries the index geometry derived from its shape (see package shapes): byte-scaled strides
// and back-strides, the table of every coordinate tuple and the table of the linear offset each
// tuple maps to.
//
// On top of it the package provides creation (Create, New, FromFlat, Arange, Random),
// copying reshapes (ReshapeCopy, Reshape), broadcasting elementwise operations (Add, Multiply,
// BroadcastTo) and batched matrix multiplication (MatMul) with NumPy semantics.
//
// Operations never modify their operands: they return a newly allocated Array, or an error
// wrapping one of the package's sentinel errors (ErrInvalidShape, ErrBroadcastIncompatible,
// ErrInvalidRange, ErrInvalidReshape, ErrRankTooLow, ErrDimensionMismatch, ErrIndexOutOfRange).
// Large operations are split into chunks executed in parallel, see Config.
//
// Example:
//
//	a := must.M1(ndarray.Arange[float32](1, 7, 1))
//	a = must.M1(ndarray.Reshape(a, 2, 3))
//	b := must.M1(ndarray.Arange[float32](1, 4, 1))
//	sum := must.M1(ndarray.Add(a, b)) // [[2 4 6] [5 7 9]]
package ndarray
