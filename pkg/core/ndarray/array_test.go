package ndarray

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfigs runs testFn with parallelism disabled and with parallelism forced even for small
// arrays, and restores the previous configuration at the end.
func withConfigs(t *testing.T, testFn func(t *testing.T)) {
	previous := CurrentConfig()
	defer SetConfig(previous)
	for _, cfg := range []Config{
		{MaxParallelism: 0, MinParallelSize: DefaultMinParallelSize},
		{MaxParallelism: 4, MinParallelSize: 1},
	} {
		SetConfig(cfg)
		t.Run(cfgName(cfg), testFn)
	}
}

func cfgName(cfg Config) string {
	if cfg.MaxParallelism <= 1 {
		return "sequential"
	}
	return "parallel"
}

func TestCreate(t *testing.T) {
	for _, dims := range [][]int{{1}, {7}, {2, 3}, {2, 3, 4}, {1, 5, 1, 2}} {
		a, err := Create[float32](dims, len(dims))
		require.NoError(t, err)
		size := 1
		for _, dim := range dims {
			size *= dim
		}
		assert.Equal(t, size, a.Size())
		assert.Len(t, a.Flat(), size)
		assert.Equal(t, dims, a.Dimensions())
		assert.Equal(t, len(dims), a.Rank())
		assert.Equal(t, 4, a.ItemSize())
		assert.Equal(t, uintptr(4*size), a.Memory())
		assert.Equal(t, dtypes.Float32, a.DType())
		for _, v := range a.Flat() {
			require.Zero(t, v)
		}

		// Index tables.
		indices, linear := a.Indices(), a.LinearIndices()
		require.Equal(t, size, indices.Count)
		require.Equal(t, size, linear.Count)
		require.Len(t, indices.Indices, size)
		for ii, offset := range linear.Indices {
			// Freshly created arrays are row-major, so the linear offsets are the identity.
			require.Equal(t, ii, offset)
			require.Len(t, indices.Indices[ii], len(dims))
		}

		// Contiguity: row-major arrays are always C-contiguous.
		assert.True(t, a.IsCContiguous())
		assert.Equal(t, a.Strides()[0] == a.ItemSize(), a.IsFContiguous())
	}

	a, err := New[float64](2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{96, 32, 8}, a.Strides())
	assert.Equal(t, []int{-96, -64, -24}, a.BackStrides())
	assert.Equal(t, []int{0, 0, 0}, a.Indices().Indices[0])
	assert.Equal(t, []int{0, 1, 2}, a.Indices().Indices[6])
	assert.Equal(t, []int{1, 2, 3}, a.Indices().Indices[23])
	assert.False(t, a.IsFContiguous())

	// Rank 1 is both C and F contiguous.
	a8, err := New[int8](5)
	require.NoError(t, err)
	assert.True(t, a8.IsCContiguous())
	assert.True(t, a8.IsFContiguous())
	assert.Equal(t, []int{1}, a8.Strides())
	assert.Equal(t, []int{-4}, a8.BackStrides())

	// Accessors return copies.
	a8.Dimensions()[0] = 100
	a8.Strides()[0] = 100
	assert.Equal(t, []int{5}, a8.Dimensions())
	assert.Equal(t, []int{1}, a8.Strides())
}

func TestCreateErrors(t *testing.T) {
	testCases := []struct {
		name string
		dims []int
		ndim int
	}{
		{"rank 0", []int{}, 0},
		{"ndim mismatch", []int{2, 3}, 3},
		{"zero dimension", []int{2, 0}, 2},
		{"negative dimension", []int{-1}, 1},
		{"bytes overflow", []int{1 << 61, 3}, 2},
		{"index table overflow", []int{1 << 40, 1 << 20, 1}, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Create[float32](tc.dims, tc.ndim)
			require.ErrorIs(t, err, ErrInvalidShape)
			require.Nil(t, a)
		})
	}
	_, err := New[int32]()
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestFromFlat(t *testing.T) {
	values := []int32{1, 2, 3, 4, 5, 6}
	a, err := FromFlat(values, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, values, a.Flat())
	assert.Equal(t, dtypes.Int32, a.DType())

	// The values are copied.
	values[0] = 100
	assert.Equal(t, int32(1), a.Flat()[0])

	_, err = FromFlat(values, 4, 2)
	require.ErrorIs(t, err, ErrInvalidReshape)
	_, err = FromFlat(values, 6, 0)
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestAtSet(t *testing.T) {
	a, err := FromFlat([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
	v, err = a.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	require.NoError(t, a.Set(-1, 1, 0))
	assert.Equal(t, []float64{1, 2, 3, -1, 5, 6}, a.Flat())

	for _, coords := range [][]int{{}, {1}, {2, 0}, {0, 3}, {0, -1}, {0, 0, 0}} {
		_, err = a.At(coords...)
		require.ErrorIsf(t, err, ErrIndexOutOfRange, "coordinates %v", coords)
		require.ErrorIsf(t, a.Set(0, coords...), ErrIndexOutOfRange, "coordinates %v", coords)
	}
}

func TestCloneEqual(t *testing.T) {
	a, err := FromFlat([]uint16{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b := a.Clone()
	require.True(t, a.Equal(b))
	b.Flat()[0] = 7
	assert.False(t, a.Equal(b))
	assert.Equal(t, uint16(1), a.Flat()[0])

	c, err := FromFlat([]uint16{1, 2, 3, 4}, 4)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))

	var nilArray *Array[uint16]
	assert.True(t, nilArray.Equal(nil))
}
