package ndarray

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMultiply(t *testing.T) {
	withConfigs(t, func(t *testing.T) {
		a := must.M1(Arange[float32](1, 7, 1))
		sum, err := Add(a, a)
		require.NoError(t, err)
		assert.Equal(t, []int{6}, sum.Dimensions())
		assert.Equal(t, []float32{2, 4, 6, 8, 10, 12}, sum.Flat())

		prod, err := Multiply(a, a)
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 4, 9, 16, 25, 36}, prod.Flat())

		// Operands are not modified.
		assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, a.Flat())

		x := must.M1(Arange[int64](0, 5000, 1))
		y := must.M1(Full[int64](2, 5000))
		xy := must.M1(Multiply(x, y))
		for ii, v := range xy.Flat() {
			require.Equal(t, int64(2*ii), v)
		}
	})
}

func TestAddBroadcast(t *testing.T) {
	withConfigs(t, func(t *testing.T) {
		a := must.M1(Reshape(must.M1(FromFlat([]float32{1, 2, 3}, 3)), 1, 3))
		b := must.M1(Reshape(must.M1(FromFlat([]float32{1, 2}, 2)), 2, 1))
		sum, err := Add(a, b)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, sum.Dimensions())
		assert.Equal(t, []float32{2, 3, 4, 3, 4, 5}, sum.Flat())

		// Lower rank operand: [2, 3] + [3].
		c := must.M1(Reshape(must.M1(Arange[int32](1, 7, 1)), 2, 3))
		d := must.M1(FromFlat([]int32{10, 20, 30}, 3))
		sum2, err := Add(c, d)
		require.NoError(t, err)
		assert.Equal(t, []int32{11, 22, 33, 14, 25, 36}, sum2.Flat())
		sum2, err = Add(d, c)
		require.NoError(t, err)
		assert.Equal(t, []int32{11, 22, 33, 14, 25, 36}, sum2.Flat())

		// [2, 1, 3] * [4, 1] → [2, 4, 3].
		e := must.M1(Reshape(must.M1(Arange[float64](1, 7, 1)), 2, 1, 3))
		f := must.M1(Reshape(must.M1(Arange[float64](1, 5, 1)), 4, 1))
		prod, err := Multiply(e, f)
		require.NoError(t, err)
		require.Equal(t, []int{2, 4, 3}, prod.Dimensions())
		for i := range 2 {
			for j := range 4 {
				for k := range 3 {
					got := must.M1(prod.At(i, j, k))
					want := float64(i*3+k+1) * float64(j+1)
					require.Equalf(t, want, got, "at (%d, %d, %d)", i, j, k)
				}
			}
		}
	})
}

func TestElementwiseErrors(t *testing.T) {
	a := must.M1(New[float32](2, 3))
	b := must.M1(New[float32](4, 5))
	_, err := Add(a, b)
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
	_, err = Multiply(a, b)
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
	_, err = Add(a, must.M1(New[float32](2)))
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
	_, err = Add(a, nil)
	require.ErrorIs(t, err, ErrNilArray)
}

func TestBroadcastTo(t *testing.T) {
	withConfigs(t, func(t *testing.T) {
		a := must.M1(FromFlat([]int16{1, 2, 3}, 3))
		b, err := BroadcastTo(a, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, b.Dimensions())
		assert.Equal(t, []int16{1, 2, 3, 1, 2, 3}, b.Flat())

		c := must.M1(FromFlat([]int16{1, 2}, 2, 1))
		d, err := BroadcastTo(c, 2, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, []int16{1, 1, 1, 2, 2, 2, 1, 1, 1, 2, 2, 2}, d.Flat())

		// Broadcasting to the same shape is a copy.
		e, err := BroadcastTo(a, 3)
		require.NoError(t, err)
		assert.True(t, a.Equal(e))
		e.Flat()[0] = 0
		assert.Equal(t, int16(1), a.Flat()[0])
	})

	a := must.M1(FromFlat([]int16{1, 2, 3}, 3))
	_, err := BroadcastTo(a, 2)
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
	_, err = BroadcastTo(must.M1(New[int16](2, 3)), 3)
	require.ErrorIs(t, err, ErrBroadcastIncompatible)
	_, err = BroadcastTo(a, 0, 3)
	require.ErrorIs(t, err, ErrInvalidShape)
}
