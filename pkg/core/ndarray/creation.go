// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/gomlx/ndarray/pkg/support/xslices"
	"github.com/pkg/errors"
)

// Arange returns a rank-1 array with the values start, start+step, start+2*step, ..., up to end
// (exclusive). It has ceil((end-start)/step) elements.
//
// It returns an error wrapping ErrInvalidRange unless start < end and step > 0, so NaN arguments
// are rejected.
//
// Example:
//
//	Arange[float32](1, 7, 1) → [1 2 3 4 5 6]
//	Arange[int32](0, 10, 3) → [0 3 6 9]
func Arange[T Number](start, end, step T) (*Array[T], error) {
	if !(start < end) {
		return nil, errors.Wrapf(ErrInvalidRange, "ndarray.Arange(%v, %v, %v): start must be < end", start, end, step)
	}
	if !(step > 0) {
		return nil, errors.Wrapf(ErrInvalidRange, "ndarray.Arange(%v, %v, %v): step must be > 0", start, end, step)
	}
	count := math.Ceil((float64(end) - float64(start)) / float64(step))
	if count >= math.MaxInt32 {
		return nil, errors.Wrapf(ErrInvalidRange, "ndarray.Arange(%v, %v, %v): too many elements (%g)", start, end, step, count)
	}
	a, err := New[T](max(int(count), 1))
	if err != nil {
		return nil, errors.WithMessagef(err, "ndarray.Arange(%v, %v, %v)", start, end, step)
	}
	for ii := range a.flat {
		a.flat[ii] = start + T(ii)*step
	}
	return a, nil
}

// Full returns an array with the given dimensions and all elements set to value.
func Full[T Number](value T, dimensions ...int) (*Array[T], error) {
	a, err := New[T](dimensions...)
	if err != nil {
		return nil, errors.WithMessage(err, "ndarray.Full")
	}
	xslices.FillSlice(a.flat, value)
	return a, nil
}

// Sampler is a source of random numbers used by Random.
type Sampler interface {
	// Uniform returns a random number uniformly distributed in [min, max).
	Uniform(min, max float64) float64
}

// UniformSampler is a Sampler backed by a PCG pseudo-random generator.
// It is safe for concurrent use.
//
// It's not cryptographically secure, it is meant for initializing values and tests.
type UniformSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Sampler = (*UniformSampler)(nil)

// NewUniformSampler returns a deterministic sampler: the same seed generates the same sequence.
func NewUniformSampler(seed uint64) *UniformSampler {
	return &UniformSampler{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)), //nolint:gosec // Not used for security.
	}
}

// Uniform implements Sampler.
func (s *UniformSampler) Uniform(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

// globalSampler uses the randomly seeded generator of math/rand/v2.
type globalSampler struct{}

func (globalSampler) Uniform(min, max float64) float64 {
	return min + rand.Float64()*(max-min) //nolint:gosec // Not used for security.
}

// Random returns an array with the given dimensions filled with values drawn from
// sampler.Uniform(min, max), converted to T. Elements are drawn in row-major order.
func Random[T Number](sampler Sampler, min, max float64, dimensions ...int) (*Array[T], error) {
	if sampler == nil {
		return nil, errors.Wrap(ErrNilSampler, "ndarray.Random")
	}
	if !(min < max) {
		return nil, errors.Wrapf(ErrInvalidRange, "ndarray.Random: min (%g) must be < max (%g)", min, max)
	}
	a, err := New[T](dimensions...)
	if err != nil {
		return nil, errors.WithMessage(err, "ndarray.Random")
	}
	for ii := range a.flat {
		a.flat[ii] = T(sampler.Uniform(min, max))
	}
	return a, nil
}

// RandomUniform returns an array with the given dimensions filled with random values uniformly
// distributed in [0, 1), from a randomly seeded generator.
//
// For integer types all values are 0, use Random with a wider range instead.
func RandomUniform[T Number](dimensions ...int) (*Array[T], error) {
	return Random[T](globalSampler{}, 0, 1, dimensions...)
}
