package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dope/internal/bounds"
	"github.com/born-ml/dope/internal/dope"
	"github.com/born-ml/dope/internal/parallel"
)

func TestFillParallel(t *testing.T) {
	v, err := New[float64](rowMajor(t, 64, 33))
	require.NoError(t, err)
	defer v.Release()

	v.fill(1.5, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 33})
	for _, x := range v.ToSlice() {
		require.Equal(t, 1.5, x)
	}
}

func TestFillStridedLeavesGaps(t *testing.T) {
	data := make([]int32, 12)
	v, err := FromSlice(data, dope.Layout2{{0, 3, 4}, {0, 2, 2}})
	require.NoError(t, err)
	defer v.Release()

	v.fill(1, parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1})
	assert.Equal(t, []int32{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}, data)
}

func TestFillOverlappingRunsSequentially(t *testing.T) {
	data := make([]uint8, 3)
	// Every row aliases the same three elements.
	v, err := FromSlice(data, dope.Layout2{{0, 100, 0}, {0, 3, 1}})
	require.NoError(t, err)
	defer v.Release()

	v.fill(5, parallel.Config{Enabled: true, NumWorkers: 8, MinChunkSize: 1})
	assert.Equal(t, []uint8{5, 5, 5}, data)
}

func TestFillWithReporter(t *testing.T) {
	v, err := New[int64](rowMajor(t, 10, 10))
	require.NoError(t, err)
	defer v.Release()

	var c bounds.Collector
	checked := v.Checked(c.Func())
	defer checked.Release()

	checked.Fill(3)
	assert.Empty(t, c.Errors())
	assert.Equal(t, int64(3), v.Get(9, 9))
}

func TestFillEmpty(t *testing.T) {
	v, err := FromSlice([]float32{}, dope.Layout2{{0, 4, 1}, {0, 0, 1}})
	require.NoError(t, err)
	defer v.Release()
	v.Fill(1)
	assert.Equal(t, 0, v.NumElements())
}
