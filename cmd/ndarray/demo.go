// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/ndarray/pkg/core/ndarray"
	"github.com/gomlx/ndarray/ui/commandline"
	"github.com/janpfeifer/must"
)

// show prints the array preceded by its name.
func show[T ndarray.Number](name string, a *ndarray.Array[T]) {
	fmt.Printf("%s:\n%s\n", name, a)
}

// showInfo prints a table with the layout of the array.
func showInfo[T ndarray.Number](a *ndarray.Array[T]) {
	table := commandline.NewTable(false, lipgloss.Right, lipgloss.Left)
	table.Row("Shape", a.Shape().String())
	table.Row("Strides", fmt.Sprint(a.Strides()))
	table.Row("Back-strides", fmt.Sprint(a.BackStrides()))
	table.Row("# elements", humanize.Comma(int64(a.Size())))
	table.Row("# bytes", humanize.Bytes(uint64(a.Memory())))
	table.Row("C-contiguous", fmt.Sprint(a.IsCContiguous()))
	table.Row("F-contiguous", fmt.Sprint(a.IsFContiguous()))
	fmt.Println(table.Render())
}

func demo() {
	commandline.PrintTitle(os.Stdout, "1. Array creation")
	arrF32 := must.M1(ndarray.Arange[float32](1, 9, 1))
	show("Float32 array from 1 to 8", arrF32)
	show("Int32 array from -3 to 3", must.M1(ndarray.Arange[int32](-3, 4, 1)))
	show("2x4 array of random float64 values", must.M1(ndarray.RandomUniform[float64](2, 4)))

	commandline.PrintTitle(os.Stdout, "2. Reshaping and inspecting an array")
	reshaped := must.M1(ndarray.Reshape(arrF32, 2, 4))
	show("Float32 array reshaped to 2x4", reshaped)
	showInfo(reshaped)
	fmt.Println(reshaped.Info())

	commandline.PrintTitle(os.Stdout, "3. Elementwise operations")
	a := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[int32](1, 9, 1)), 2, 4))
	b := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[int32](10, 18, 1)), 2, 4))
	show("A", a)
	show("B", b)
	show("A + B", must.M1(ndarray.Add(a, b)))

	aBroadcast := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[float64](1, 4, 1)), 1, 3))
	bBroadcast := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[float64](1, 3, 1)), 2, 1))
	show("A (1x3)", aBroadcast)
	show("B (2x1)", bBroadcast)
	show("A + B, broadcast to 2x3", must.M1(ndarray.Add(aBroadcast, bBroadcast)))

	aMul := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[int32](1, 5, 1)), 2, 2))
	bMul := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[int32](5, 9, 1)), 2, 2))
	show("A", aMul)
	show("B", bMul)
	show("A * B", must.M1(ndarray.Multiply(aMul, bMul)))

	commandline.PrintTitle(os.Stdout, "4. Matrix multiplication")
	mat1 := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[float32](1, 7, 1)), 2, 3))
	mat2 := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[float32](7, 13, 1)), 3, 2))
	show("Matrix 1 (2x3)", mat1)
	show("Matrix 2 (3x2)", mat2)
	show("Matrix 1 x Matrix 2 (2x2)", must.M1(ndarray.MatMul(mat1, mat2)))

	batch := must.M1(ndarray.Reshape(must.M1(ndarray.Arange[float32](1, 13, 1)), 2, 2, 3))
	show("Batch of two 2x3 matrices", batch)
	show("Batch x Matrix 2, broadcast over the batch", must.M1(ndarray.MatMul(batch, mat2)))
}
