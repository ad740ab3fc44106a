// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/ndarray/pkg/core/ndarray"
	"github.com/gomlx/ndarray/ui/commandline"
)

type benchOp struct {
	name string
	run  func(x, y *ndarray.Array[float32]) (*ndarray.Array[float32], error)
	// flops returns the number of arithmetic operations of one run.
	flops func(dims []int) float64
}

// benchmark times each operation over iters iterations on random float32 arrays of the given
// dimensions, and prints a table with the results.
func benchmark(dims []int, iters int) error {
	x, err := ndarray.RandomUniform[float32](dims...)
	if err != nil {
		return err
	}
	y, err := ndarray.RandomUniform[float32](dims...)
	if err != nil {
		return err
	}
	// The second operand of MatMul has the last two axes swapped.
	transposedDims := slices.Clone(dims)
	rank := len(dims)
	transposedDims[rank-2], transposedDims[rank-1] = dims[rank-1], dims[rank-2]
	yT, err := ndarray.Reshape(y, transposedDims...)
	if err != nil {
		return err
	}

	size := float64(x.Size())
	ops := []benchOp{
		{"Add", ndarray.Add[float32], func(_ []int) float64 { return size }},
		{"Multiply", ndarray.Multiply[float32], func(_ []int) float64 { return size }},
		{"MatMul", func(x, _ *ndarray.Array[float32]) (*ndarray.Array[float32], error) {
			return ndarray.MatMul(x, yT)
		}, func(dims []int) float64 { return 2 * size * float64(dims[len(dims)-2]) }},
	}

	cfg := ndarray.CurrentConfig()
	commandline.PrintTitle(os.Stdout, fmt.Sprintf("Benchmarking %s (%s elements, %s), parallelism=%d",
		x.Shape(), humanize.Comma(int64(x.Size())), humanize.Bytes(uint64(x.Memory())), cfg.MaxParallelism))
	table := commandline.NewTable(true, lipgloss.Left, lipgloss.Right)
	table.Headers("Operation", "Median", "Throughput")
	for _, op := range ops {
		opName := op.name
		pBar := commandline.NewProgressBar(opName, iters, func() (name, value string) {
			return "Operation", opName
		})
		for range iters {
			if _, err := op.run(x, y); err != nil {
				pBar.Done()
				return err
			}
			pBar.Step()
		}
		median := pBar.MedianStepDuration()
		pBar.Done()
		throughput := "-"
		if median > 0 {
			throughput = humanize.SI(op.flops(dims)/median.Seconds(), "flop/s")
		}
		table.Row(opName, commandline.FormatDuration(median), throughput)
	}
	fmt.Println(table.Render())
	return nil
}
