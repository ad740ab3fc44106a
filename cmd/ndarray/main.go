// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// ndarray demonstrates and benchmarks the ndarray package.
//
// By default, it walks through array creation, reshaping, elementwise operations with
// broadcasting and matrix multiplication, printing the arrays involved. With -bench it instead
// times repeated operations on random arrays.
//
// Example:
//
//	ndarray -bench -bench_dims=512,512 -bench_iters=20 -config=parallelism=4
package main

import (
	"flag"
	"os"

	"github.com/gomlx/ndarray/pkg/core/ndarray"
	"github.com/gomlx/ndarray/pkg/support/xslices"
	"k8s.io/klog/v2"
)

var (
	flagDemo       = flag.Bool("demo", true, "Walk through the main operations, printing the arrays involved.")
	flagBench      = flag.Bool("bench", false, "Benchmark Add, Multiply and MatMul on random arrays. It disables -demo.")
	flagBenchDims  = xslices.IntsFlag("bench_dims", []int{512, 512}, "Dimensions of the arrays used by -bench, at least 2 axes.")
	flagBenchIters = flag.Int("bench_iters", 20, "Number of iterations of each operation benchmarked.")
	flagConfig     = flag.String("config", "", "Configuration of the ndarray package, e.g. \"parallelism=4,min_parallel_size=1024\". "+
		"If empty, it uses $"+ndarray.NDARRAY_CONFIG+" or the defaults.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagConfig != "" {
		cfg, err := ndarray.ParseConfig(*flagConfig)
		if err != nil {
			klog.Errorf("Invalid -config: %+v", err)
			os.Exit(1)
		}
		ndarray.SetConfig(cfg)
	}

	if *flagBench {
		if len(*flagBenchDims) < 2 || *flagBenchIters <= 0 {
			klog.Errorf("-bench requires -bench_dims with at least 2 axes and -bench_iters > 0. See 'ndarray -help'.")
			os.Exit(1)
		}
		if err := benchmark(*flagBenchDims, *flagBenchIters); err != nil {
			klog.Errorf("Benchmark failed: %+v", err)
			os.Exit(1)
		}
		return
	}
	if *flagDemo {
		demo()
	}
}
