package ndarray

import (
	"testing"

	"github.com/janpfeifer/must"
)

// benchmarkOps runs the benchmarks of the main operations for the element type T.
func benchmarkOps[T float32 | float64](b *testing.B) {
	b.Run("Arange", func(b *testing.B) {
		for b.Loop() {
			_ = must.M1(Arange[T](1, 100_000, 1))
		}
	})

	b.Run("RandomUniform", func(b *testing.B) {
		for b.Loop() {
			_ = must.M1(RandomUniform[T](1000, 1000))
		}
	})

	b.Run("Reshape", func(b *testing.B) {
		a := must.M1(Arange[T](1, 10_001, 1))
		for b.Loop() {
			_ = must.M1(Reshape(a, 100, 100))
		}
	})

	b.Run("Add", func(b *testing.B) {
		x, y := must.M1(RandomUniform[T](1000, 1000)), must.M1(RandomUniform[T](1000, 1000))
		for b.Loop() {
			_ = must.M1(Add(x, y))
		}
	})

	b.Run("AddBroadcast", func(b *testing.B) {
		x, y := must.M1(RandomUniform[T](1000, 1000)), must.M1(RandomUniform[T](1000))
		for b.Loop() {
			_ = must.M1(Add(x, y))
		}
	})

	b.Run("Multiply", func(b *testing.B) {
		x, y := must.M1(RandomUniform[T](1000, 1000)), must.M1(RandomUniform[T](1000, 1000))
		for b.Loop() {
			_ = must.M1(Multiply(x, y))
		}
	})

	b.Run("MatMul", func(b *testing.B) {
		x, y := must.M1(RandomUniform[T](200, 300)), must.M1(RandomUniform[T](300, 200))
		for b.Loop() {
			_ = must.M1(MatMul(x, y))
		}
	})
}

func BenchmarkFloat32(b *testing.B) {
	benchmarkOps[float32](b)
}

func BenchmarkFloat64(b *testing.B) {
	benchmarkOps[float64](b)
}
