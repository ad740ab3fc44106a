// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool implements a soft-limited pool of goroutines used to run the data-parallel
// kernels of the ndarray package.
package workerspool

import (
	"runtime"
	"sync"

	"github.com/gomlx/exceptions"
)

type Pool struct {
	// maxParallelism is a soft target on the limit of parallel work to do.
	maxParallelism int
	mu             sync.Mutex
	cond           sync.Cond // Should be signaled whenever numRunning is decreased.
	numRunning     int
}

// NewWithParallelism returns a new Pool with the given maxParallelism, a soft-target for parallelism.
// If set to 0 parallelism is disabled and tasks run inline. If set to -1 parallelism is unlimited.
func NewWithParallelism(maxParallelism int) *Pool {
	w := &Pool{maxParallelism: maxParallelism}
	w.cond = sync.Cond{L: &w.mu}
	return w
}

// IsUnlimited returns whether parallelism is unlimited (maxParallelism < 0)
func (w *Pool) IsUnlimited() bool {
	return w.maxParallelism < 0
}

// lockedIsFull returns whether all available workers are in use.
//
// It must be called with Pool.mu acquired.
func (w *Pool) lockedIsFull() bool {
	if w.maxParallelism == 0 {
		return true
	} else if w.maxParallelism < 0 {
		return false
	}
	return w.numRunning >= w.maxParallelism
}

// WaitToStart waits until there is a worker available to run the task.
//
// If parallelism is disabled (maxParallelism is 0), it runs the task inline and returns when it is finished.
func (w *Pool) WaitToStart(task func()) {
	if w.IsUnlimited() {
		go task()
		return

	} else if w.maxParallelism == 0 {
		// No parallelism, run inline.
		task()
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for w.lockedIsFull() {
		w.cond.Wait()
	}
	w.lockedRunTaskInGoroutine(task)
}

// lockedRunTaskInGoroutine and keep tabs on w.numRunning.
//
// It must be called with Pool.mu acquired.
func (w *Pool) lockedRunTaskInGoroutine(task func()) {
	w.numRunning++
	go func() {
		task()
		w.mu.Lock()
		w.numRunning--
		w.cond.Signal()
		w.mu.Unlock()
	}()
}

// ParallelFor calls fn(start, end) over consecutive chunks covering [0, n), and returns when all
// chunks are done.
//
// Chunks have at least minChunkSize items. If n is smaller than that, or parallelism is disabled,
// fn(0, n) runs inline in the calling goroutine.
//
// If any chunk panics, the panic is captured and re-raised in the calling goroutine after all
// chunks finished.
func (w *Pool) ParallelFor(n, minChunkSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	minChunkSize = max(minChunkSize, 1)
	numWorkers := w.maxParallelism
	if numWorkers < 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers <= 1 || n < 2*minChunkSize {
		fn(0, n)
		return
	}
	chunkSize := max((n+numWorkers-1)/numWorkers, minChunkSize)

	var wg sync.WaitGroup
	var panicMu sync.Mutex
	var firstPanic any
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		w.WaitToStart(func() {
			defer wg.Done()
			if exception := exceptions.Try(func() { fn(start, end) }); exception != nil {
				panicMu.Lock()
				if firstPanic == nil {
					firstPanic = exception
				}
				panicMu.Unlock()
			}
		})
	}
	wg.Wait()
	if firstPanic != nil {
		panic(firstPanic)
	}
}
