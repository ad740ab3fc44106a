// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/gomlx/ndarray/pkg/core/ndarray"
	"github.com/stretchr/testify/require"
)

func TestDemo(t *testing.T) {
	require.NotPanics(t, demo)
}

func TestBenchmark(t *testing.T) {
	previous := ndarray.CurrentConfig()
	defer ndarray.SetConfig(previous)
	ndarray.SetConfig(ndarray.Config{MaxParallelism: 2, MinParallelSize: 16})
	require.NoError(t, benchmark([]int{2, 8, 8}, 2))
}
