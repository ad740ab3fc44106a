// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"github.com/gomlx/ndarray/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Errors returned by the package. They are always wrapped with the context of the failing call,
// so match them with errors.Is.
var (
	// ErrInvalidShape is returned for a rank of 0, a rank that doesn't match the number of
	// dimensions given, or a dimension <= 0.
	ErrInvalidShape = shapes.ErrInvalidShape

	// ErrBroadcastIncompatible is returned by elementwise operations on shapes that can't be broadcast.
	ErrBroadcastIncompatible = shapes.ErrBroadcastIncompatible

	// ErrInvalidRange is returned by Arange if start >= end or step <= 0.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidReshape is returned when the number of elements of the new shape differs from the
	// number of elements of the array.
	ErrInvalidReshape = errors.New("invalid reshape")

	// ErrRankTooLow is returned by MatMul if an operand has rank < 2.
	ErrRankTooLow = errors.New("rank too low")

	// ErrDimensionMismatch is returned by MatMul if the contracting dimensions differ, or if the
	// batch dimensions can't be broadcast.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrIndexOutOfRange is returned by Array.At and Array.Set for invalid coordinates.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNilArray is returned when a nil *Array is given as an operand.
	ErrNilArray = errors.New("nil array")

	// ErrNilSampler is returned by Random if no Sampler is given.
	ErrNilSampler = errors.New("nil sampler")
)
